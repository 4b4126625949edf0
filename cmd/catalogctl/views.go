package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/domain/views"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/spf13/cobra"
)

func newViewsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Print a derived catalog view",
	}

	var limit int
	trending := &cobra.Command{
		Use:   "trending",
		Short: "First projects of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.load()
			if err != nil {
				return err
			}
			return printProjects(cmd.OutOrStdout(), opts, views.TakeTrending(catalog, limit))
		},
	}
	trending.Flags().IntVarP(&limit, "limit", "n", views.DefaultTrendingSize, "number of projects")

	launches := &cobra.Command{
		Use:   "new-launches",
		Short: `Projects whose status is exactly "New Launch"`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.load()
			if err != nil {
				return err
			}
			return printProjects(cmd.OutOrStdout(), opts, views.NewLaunches(catalog))
		},
	}

	var featured int
	developers := &cobra.Command{
		Use:   "developers",
		Short: "Projects grouped by developer in order of first appearance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.load()
			if err != nil {
				return err
			}
			summaries := developer.Aggregate(catalog)
			if cmd.Flags().Changed("featured") {
				summaries = developer.Featured(catalog, featured)
			}
			return printDevelopers(cmd.OutOrStdout(), opts, summaries)
		},
	}
	developers.Flags().IntVar(&featured, "featured", views.DefaultFeaturedLimit, "only the first N developers")

	cmd.AddCommand(trending, launches, developers)
	return cmd
}

func printProjects(w io.Writer, opts *rootOptions, projects []project.Project) error {
	if opts.json {
		return writeJSON(w, projects)
	}
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects")
		return err
	}
	f := present.NewFormatter(opts.locale, opts.currency)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEVELOPER\tLOCATION\tSTATUS\tFROM")
	for _, p := range projects {
		s := f.Slide(p)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, s.Title, developer.Key(p), s.Location, p.Status, s.PriceLabel)
	}
	return tw.Flush()
}

func printDevelopers(w io.Writer, opts *rootOptions, summaries []developer.Summary) error {
	if opts.json {
		return writeJSON(w, summaries)
	}
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No developers")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVELOPER\tPROJECTS\tCITY\tNEXT POSSESSION\tIDS")
	for _, s := range summaries {
		ids := make([]string, 0, len(s.Projects))
		for _, p := range s.Projects {
			ids = append(ids, p.ID)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Developer, s.Count, s.City, s.NextPossession, strings.Join(ids, ","))
	}
	return tw.Flush()
}
