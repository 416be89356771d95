package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edusync/coursemap/internal/cli"
)

func classifyCmd() *cobra.Command {
	var namesFile string

	cmd := &cobra.Command{
		Use:   "classify [names...]",
		Short: "Classify group names into category buckets",
		Long:  `Run group names through the category classifier and show the resolved category, type, and base name for each.`,
		RunE: func(_ *cobra.Command, args []string) error {
			names, err := collectNames(args, namesFile)
			if err != nil {
				return err
			}

			c := newClassifier()
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Category config source: %s", c.ConfigSource())))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Base name"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 24),
				strings.Repeat("-", 8),
				strings.Repeat("-", 16),
				strings.Repeat("-", 16))

			for _, name := range names {
				categoryName := cli.SubtleStyle.Render("(none)")
				if cat := c.Classify(name); cat != nil {
					categoryName = cat.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, c.TypeOf(name), categoryName, c.ExtractBaseName(name))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&namesFile, "file", "", "file with one group name per line")

	return cmd
}
