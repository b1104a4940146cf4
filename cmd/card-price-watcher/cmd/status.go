package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/card-price-watcher/internal/api/client"
)

func addServerFlags(c *cobra.Command) {
	c.Flags().String("server", "http://localhost:8080", "status server URL (env CPW_SERVER)")
	c.Flags().String("output", "table", "output format (table, json)")
}

func newClient(c *cobra.Command) *apiclient.Client {
	cobra.CheckErr(viper.BindPFlag("server", c.Flags().Lookup("server")))
	return apiclient.New(viper.GetString("server"))
}

func statusCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "status [blueprint-id]",
		Short: "Show the current best listing of each watched blueprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client := newClient(c)
			output, _ := c.Flags().GetString("output")

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("parsing blueprint id %q: %w", args[0], err)
				}
				st, err := client.GetWatch(c.Context(), id)
				if err != nil {
					return err
				}
				if output == "json" {
					return writeJSON(c, st)
				}
				return printStatusDetail(c.OutOrStdout(), st)
			}

			statuses, err := client.ListWatches(c.Context())
			if err != nil {
				return err
			}
			if output == "json" {
				return writeJSON(c, statuses)
			}
			return printStatusTable(c.OutOrStdout(), statuses)
		},
	}
	addServerFlags(c)
	return c
}

func triggerCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "trigger",
		Short: "Ask a running watcher to poll every blueprint now",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			err := newClient(c).TriggerCycle(c.Context())
			if errors.Is(err, apiclient.ErrCycleRunning) {
				fmt.Fprintln(c.OutOrStdout(), "A cycle is already running.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Cycle started.")
			return nil
		},
	}
	addServerFlags(c)
	return c
}

func writeJSON(c *cobra.Command, v any) error {
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
