package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DorinSirca/ismyjobcooked-api/internal/httpapi"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ismyjobcooked %s (API %s)\n", version, httpapi.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
