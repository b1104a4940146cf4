// Package main is the entry point for the card-price-watcher.
package main

import (
	"os"

	"github.com/donaldgifford/card-price-watcher/cmd/card-price-watcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
