package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬─┐┌─┐┬ ┬
  ├┤ ├┬┘├─┤└┬┘
  └  ┴└─┴ ┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "fray",
		Short: "A reactive DOM runtime for Go",
		Long: `Fray is a reactive UI runtime for Go.

Components declare reactive slots; slot writes coalesce into batched
flushes that patch a headless DOM with the minimum number of mutations.
Pre-rendered HTML is adopted in place through hydration, and exit
transitions coordinate through grouped outros.

The demo command runs the bundled quiz application headlessly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersion(),
	}

	rootCmd.AddCommand(
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Fray ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
