/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-express/core/pkg/di"
)

var container *di.Container

// SetContainer injects the dependency container the subcommands use.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mvpe",
	Short: "MVP.Express build driver",
	Long: `mvpe compiles an IDL schema into generated Go service code, resolving
service/method/message ids against a lockfile under the OFF, CHECK, or
WRITE allocator mode.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
