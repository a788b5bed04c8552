package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func addGenerateFlags(c *cobra.Command, defaultMode string) {
	c.Flags().String("schema", "schema.yaml", "Path to the IDL schema file")
	c.Flags().String("out", "./gen", "Output directory for generated code")
	c.Flags().String("package", "generated", "Base package for generated code")
	c.Flags().String("lockfile", "", "Path to the ids lockfile (defaults to .mvpe.ids.lock next to the schema)")
	if defaultMode == "" {
		c.Flags().String("mode", "write", "Allocator mode: off, check, or write")
	}
}

func runGenerateCmd(cmd *cobra.Command, forcedMode string) {
	schemaPath, _ := cmd.Flags().GetString("schema")
	outputDir, _ := cmd.Flags().GetString("out")
	basePackage, _ := cmd.Flags().GetString("package")
	lockfilePath, _ := cmd.Flags().GetString("lockfile")

	modeStr := forcedMode
	if modeStr == "" {
		modeStr, _ = cmd.Flags().GetString("mode")
	}
	mode, err := parseMode(modeStr)
	if err != nil {
		cmd.Printf("Error: %v\n", err)
		os.Exit(exitValidationError)
	}

	written, code, err := runGenerate(schemaPath, outputDir, basePackage, mode, lockfilePath)
	if err != nil {
		cmd.Printf("Error: %v\n", err)
		os.Exit(code)
	}

	cmd.Printf("Generated %d file(s) in %s\n", len(written), outputDir)
	for _, f := range written {
		cmd.Printf("  %s\n", f)
	}
}

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile a schema into generated Go code",
	Long: `Parse the schema, resolve its service/method/message ids against the
lockfile under the chosen allocator mode, and emit generated Go source.

Examples:
  mvpe generate --schema account.yaml --out ./gen --package account --mode write
  mvpe generate --schema account.yaml --mode check`,
	Run: func(cmd *cobra.Command, args []string) {
		runGenerateCmd(cmd, "")
	},
}

// checkCmd represents the check command: CI-friendly, read-only.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the schema against the lockfile without writing anything",
	Long: `Equivalent to "mvpe generate --mode check": fails if the schema
introduces a new symbol with no lockfile entry, or disagrees with an id the
lockfile already records.`,
	Run: func(cmd *cobra.Command, args []string) {
		runGenerateCmd(cmd, "check")
	},
}

// writeCmd represents the write command: the permissive local workflow.
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Resolve ids and persist the lockfile",
	Long: `Equivalent to "mvpe generate --mode write": allocates new ids, accepts
explicit overrides, and persists the result to the lockfile.`,
	Run: func(cmd *cobra.Command, args []string) {
		runGenerateCmd(cmd, "write")
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(writeCmd)

	addGenerateFlags(generateCmd, "")
	addGenerateFlags(checkCmd, "check")
	addGenerateFlags(writeCmd, "write")
}
