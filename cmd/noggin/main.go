package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "noggin",
		Short: "Noggin - a Go-native study assistant client",
		Long: `Noggin serves a browser-based study assistant written in Go: pages are
Go components compiled to WebAssembly with server-side rendered
fallbacks, talking to a study backend over HTTP. The flagship surface
is an interactive mind map of each document collection.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInitCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
