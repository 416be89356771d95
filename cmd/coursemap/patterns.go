package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edusync/coursemap/internal/cli"
	"github.com/edusync/coursemap/internal/model"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect and dry-run category patterns",
	}

	cmd.AddCommand(patternsListCmd())
	cmd.AddCommand(patternsTestCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active categories and their patterns",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClassifier()
			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Categories (source: %s)", c.ConfigSource())))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Patterns"))

			for _, cat := range c.Categories() {
				typeLabel := string(cat.Type)
				if cat.Ignore {
					typeLabel += " (ignored)"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", cat.ID, cat.Name, typeLabel, strings.Join(cat.Patterns, "  "))
			}

			return nil
		},
	}
}

func patternsTestCmd() *cobra.Command {
	var namesFile string

	cmd := &cobra.Command{
		Use:   "test [names...]",
		Short: "Dry-run a batch of names against the category patterns",
		Long:  `Bucket a batch of raw group names by category type and report per-type counts. Useful for validating pattern configuration before a sync run.`,
		RunE: func(_ *cobra.Command, args []string) error {
			names, err := collectNames(args, namesFile)
			if err != nil {
				return err
			}

			c := newClassifier()
			report := c.TestPatterns(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Category"))
			for _, r := range report.Results {
				category := r.Category
				if category == "" {
					category = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Type, category)
			}
			w.Flush()

			fmt.Println()
			order := []model.CategoryType{
				model.CategoryTypeClass,
				model.CategoryTypeTeacher,
				model.CategoryTypeProject,
				model.CategoryTypeIgnore,
				model.CategoryTypeUnknown,
			}
			counts := make([]string, 0, len(order))
			for _, t := range order {
				counts = append(counts, fmt.Sprintf("%s: %d", t, report.Counts[t]))
			}
			fmt.Println(cli.InfoStyle.Render(strings.Join(counts, "  ")))

			return nil
		},
	}

	cmd.Flags().StringVar(&namesFile, "file", "", "file with one group name per line")

	return cmd
}
