package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aniketwaliyan/sparkify-etl/internal/utils/config"
)

func runValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if err := validateConfig(configPath); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid!")
	return nil
}

func validateConfig(configPath string) error {
	parser := config.NewParser()
	_, err := parser.Parse(configPath)
	return err
}
