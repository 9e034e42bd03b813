package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:          "sparkify-etl",
		Short:        "Sparkify song and event log loader",
		Long:         "Loads Sparkify song metadata and listening event logs into a relational star schema",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Path to the pipeline configuration file")
	rootCmd.PersistentFlags().String("env-dir", ".", "Directory holding the .env file")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Load every song file and then every log file",
		RunE:  runPipeline,
	}
	runCmd.Flags().String("song-data", "", "Root directory of the song files")
	runCmd.Flags().String("log-data", "", "Root directory of the log files")
	runCmd.Flags().String("on-error", "", "Failure policy: abort or continue")
	runCmd.Flags().Bool("dry-run", false, "Parse and transform without writing to the destination")
	runCmd.Flags().Bool("create-tables", false, "Create missing tables before loading")

	var createTablesCmd = &cobra.Command{
		Use:   "create-tables",
		Short: "Create the star schema tables",
		RunE:  runCreateTables,
	}
	createTablesCmd.Flags().Bool("drop", false, "Drop existing tables first")

	var discoverCmd = &cobra.Command{
		Use:   "discover",
		Short: "List the files each family would load",
		RunE:  runDiscover,
	}
	discoverCmd.Flags().String("song-data", "", "Root directory of the song files")
	discoverCmd.Flags().String("log-data", "", "Root directory of the log files")

	var validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate the pipeline configuration",
		RunE:  runValidate,
	}

	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration and .env template",
		RunE:  runInit,
	}
	initCmd.Flags().String("name", "sparkify", "Name of the pipeline")
	initCmd.Flags().String("dir", ".", "Directory to write the files into")
	initCmd.Flags().Bool("force", false, "Overwrite existing files")

	rootCmd.AddCommand(runCmd, createTablesCmd, discoverCmd, validateCmd, initCmd)
	return rootCmd
}
