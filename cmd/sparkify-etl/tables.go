package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runCreateTables(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	exec, err := a.openExecutor(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close(exec)

	drop, _ := cmd.Flags().GetBool("drop")
	if err := exec.CreateTables(cmd.Context(), drop); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Tables created successfully")
	return nil
}
