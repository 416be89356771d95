package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the active naming configuration as JSON",
		Long:  `Serialize the live schema set, defaults, ignore patterns, and transformer tables back to the canonical document shape. The output can be edited and fed back in via --naming-config.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			p := newProcessor()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(p.ExportConfig()); err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			return nil
		},
	}
}
