/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-express/core/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a build-driver config file with sane defaults",
	Long: `Create a YAML config file (by default under the platform config dir)
with a default output directory, base package, lockfile path, and a freshly
generated system key. The generate, check and write commands take their
settings from flags and do not read this file.

Examples:
  mvpe init
  mvpe init --config ./mvpe.yaml --out ./gen`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		outputDir, _ := cmd.Flags().GetString("out")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, outputDir)
		if err != nil {
			cmd.Printf("Error bootstrapping config: %v\n", err)
			os.Exit(exitIOFailure)
		}

		cmd.Printf("Created config at %s\n", configPath)
		cmd.Printf("Output directory: %s\n", cfg.OutputDir)
		cmd.Printf("Lockfile path: %s\n", cfg.LockfilePath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("config", "", "Path to write the config file (defaults to the platform config dir)")
	initCmd.Flags().String("out", "./gen", "Default output directory to record in the config")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
