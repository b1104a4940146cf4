package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/donaldgifford/card-price-watcher/internal/engine"
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printStatusTable(w io.Writer, statuses []domain.WatchStatus) error {
	tw := newTabWriter(w)
	tw.writef("BLUEPRINT\tLIMIT\tBEST\tPOLLED\tERROR\n")
	for i := range statuses {
		st := &statuses[i]
		tw.writef("%d\t%s\t%s\t%s\t%s\n",
			st.Target.BlueprintID,
			formatCents(st.Target.PriceLimit),
			engine.FormatListing(st.Best),
			formatPolled(st.LastPolledAt),
			st.LastError,
		)
	}
	return tw.finish()
}

func printStatusDetail(w io.Writer, st *domain.WatchStatus) error {
	tw := newTabWriter(w)
	tw.writef("Blueprint:\t%d\n", st.Target.BlueprintID)
	tw.writef("Price limit:\t%s\n", formatCents(st.Target.PriceLimit))
	if st.Target.Language != nil {
		tw.writef("Language:\t%s\n", *st.Target.Language)
	}
	if st.Target.MinCondition != nil {
		tw.writef("Min condition:\t%s\n", st.Target.MinCondition)
	}
	tw.writef("Zero only:\t%v\n", st.Target.CanOrderViaZero)
	tw.writef("Best:\t%s\n", engine.FormatListing(st.Best))
	if st.Best != nil {
		tw.writef("Seller:\t%s\n", st.Best.Seller.Username)
	}
	tw.writef("Last polled:\t%s\n", formatPolled(st.LastPolledAt))
	if st.LastError != "" {
		tw.writef("Last error:\t%s\n", st.LastError)
	}
	return tw.finish()
}

func formatCents(c int64) string {
	return domain.Price{Cents: c}.Major()
}

func formatPolled(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}
