package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rbossy/md2toc/internal/platform"
	"github.com/rbossy/md2toc/pkg/adapters/fs"
	"github.com/rbossy/md2toc/pkg/core"
)

// buildFlags are shared by build and watch.
type buildFlags struct {
	root   string
	out    string
	suffix string
	jobs   int
}

func (b *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.root, "root", ".", "Directory the pattern is matched against")
	cmd.Flags().StringVar(&b.out, "out", "", "Output directory (default: next to each source)")
	cmd.Flags().StringVar(&b.suffix, "suffix", fs.DefaultSuffix, "Replaces the source extension in output names")
	cmd.Flags().IntVarP(&b.jobs, "jobs", "j", 0, "Files built in parallel (0 for one per CPU)")
}

func (b *buildFlags) builder(cmd *cobra.Command, g *globalFlags, args []string) (*fs.Builder, error) {
	var extra []platform.Option
	if len(args) > 0 {
		extra = append(extra, platform.WithPattern(args[0]))
	}
	if cmd.Flags().Changed("out") {
		extra = append(extra, platform.WithOutDir(b.out))
	}
	if cmd.Flags().Changed("suffix") {
		extra = append(extra, platform.WithSuffix(b.suffix))
	}

	cfg, err := g.resolve(cmd, extra...)
	if err != nil {
		return nil, err
	}
	svc, err := platform.NewFromConfig(cfg, slog.Default())
	if err != nil {
		return nil, err
	}

	return fs.NewBuilder(svc, fs.BuildConfig{
		Root:    b.root,
		Pattern: cfg.Pattern,
		OutDir:  cfg.Out,
		Suffix:  cfg.Suffix,
		Jobs:    b.jobs,
		Logger:  slog.Default(),
	}), nil
}

func newBuildCmd(g *globalFlags) *cobra.Command {
	b := &buildFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "build [pattern]",
		Short: "Write a table of contents file for every matching Markdown file",
		Long: `Build matches pattern (default "**/*.md") below --root and writes one
fragment per source, named after it with --suffix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := b.builder(cmd, g, args)
			if err != nil {
				return err
			}

			events, buildErr := builder.Build(cmd.Context())
			if err := printEvents(cmd, events, asJSON); err != nil {
				return err
			}
			return buildErr
		},
	}

	b.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output events in JSON format")
	return cmd
}

type eventJSON struct {
	Type    core.EventType `json:"type"`
	Source  string         `json:"source"`
	Target  string         `json:"target"`
	Entries int            `json:"entries"`
	Error   string         `json:"error,omitempty"`
}

func printEvents(cmd *cobra.Command, events []core.Event, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := make([]eventJSON, 0, len(events))
		for _, e := range events {
			payload = append(payload, toJSON(e))
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	for _, e := range events {
		if _, err := fmt.Fprintln(out, e.String()); err != nil {
			return err
		}
	}
	return nil
}

func toJSON(e core.Event) eventJSON {
	j := eventJSON{
		Type:    e.Type,
		Source:  e.Source,
		Target:  e.Target,
		Entries: e.Entries,
	}
	if e.Err != nil {
		j.Error = e.Err.Error()
	}
	return j
}
