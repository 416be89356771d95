package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edusync/coursemap/internal/cli"
	"github.com/edusync/coursemap/internal/model"
)

func processCmd() *cobra.Command {
	var namesFile string

	cmd := &cobra.Command{
		Use:   "process [names...]",
		Short: "Render course descriptors for group names",
		Long:  `Resolve group names against the configured naming schemas and print the resulting course descriptors as JSON, with ignored and unmatched names listed separately.`,
		RunE: func(_ *cobra.Command, args []string) error {
			names, err := collectNames(args, namesFile)
			if err != nil {
				return err
			}

			groups := make([]model.Group, 0, len(names))
			for _, name := range names {
				groups = append(groups, model.Group{Name: name})
			}

			p := newProcessor()
			result := p.ProcessAll(groups)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}

			summary := fmt.Sprintf("%d matched, %d ignored, %d unmatched (schema source: %s)",
				len(result.Matched), len(result.Ignored), len(result.Unmatched), p.ConfigSource())
			fmt.Fprintln(os.Stderr, cli.InfoStyle.Render(summary))

			return nil
		},
	}

	cmd.Flags().StringVar(&namesFile, "file", "", "file with one group name per line")

	return cmd
}
