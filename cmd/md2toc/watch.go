package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rbossy/md2toc/pkg/adapters/fs"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	b := &buildFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [pattern]",
		Short: "Build, then rebuild table of contents files as sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := b.builder(cmd, g, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			initial, err := builder.Build(ctx)
			if err != nil {
				if initial == nil {
					return err
				}
				slog.Warn("initial build had failures", "error", err)
			}
			if err := printEvents(cmd, initial, false); err != nil {
				return err
			}

			w := fs.NewWatcher(builder, fs.WithDebounce(debounce))
			events, err := w.Watch(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for e := range events {
				fmt.Fprintln(out, e.String())
			}
			slog.Debug("watcher stopped", "state", w.State())
			return nil
		},
	}

	b.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", fs.DefaultDebounce, "Quiet period before a changed file is rebuilt")
	return cmd
}
