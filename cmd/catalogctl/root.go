package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/source"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	file     string
	json     bool
	locale   string
	currency string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect real-estate catalog views from a seed file",
		Long: `catalogctl loads a catalog seed file (YAML or JSON, either a bare list
of projects or {"projects": [...]}) and prints the derived views.

Examples:
  catalogctl views new-launches --file seed.yaml
  catalogctl views trending --limit 4 --file seed.yaml
  catalogctl views developers --featured 6 --json --file seed.yaml
  catalogctl carousel --view trending --duration 10s --file seed.yaml`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "catalog.yaml", "catalog seed file")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	cmd.PersistentFlags().StringVar(&opts.locale, "locale", "en-IN", "locale used for price grouping")
	cmd.PersistentFlags().StringVar(&opts.currency, "currency", "₹", "currency symbol")

	cmd.AddCommand(newViewsCmd(opts))
	cmd.AddCommand(newCarouselCmd(opts))
	return cmd
}

func (o *rootOptions) load() ([]project.Project, error) {
	projects, err := source.LoadFile(o.file)
	if err != nil {
		return nil, err
	}
	if err := project.ValidateBatch(projects); err != nil {
		return nil, fmt.Errorf("%s: %w", o.file, err)
	}
	return projects, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// lockedWriter serializes writes coming from timer goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
