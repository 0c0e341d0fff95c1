package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yatube/service"
)

var exit = os.Exit

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yatube",
		Short:         "Blog with groups, comments and author subscriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to a config file (default ./config.yaml if present)")
	root.AddCommand(service.Commands()...)
	return root
}

// RealMain runs the CLI and exits with its status.
func RealMain() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exit(1)
	}
}

func main() {
	RealMain()
}
