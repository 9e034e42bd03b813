package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aniketwaliyan/sparkify-etl/internal/extract"
)

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyRootFlags(cmd, cfg)

	out := cmd.OutOrStdout()
	for _, root := range []string{cfg.Source.SongData, cfg.Source.LogData} {
		files, err := extract.Discover(root, cfg.Source.Extension)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d files found in %s\n", len(files), root)
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	return nil
}
