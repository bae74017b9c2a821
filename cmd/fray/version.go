package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// buildVersion assembles the full version string from the ldflags vars.
func buildVersion() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			fmt.Printf("  fray %s\n\n", buildVersion())
		},
	}
}
