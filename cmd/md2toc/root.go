package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rbossy/md2toc/internal/platform"
	"github.com/rbossy/md2toc/pkg/core"
)

// globalFlags are shared by every command.
type globalFlags struct {
	verbose     bool
	config      string
	scanner     string
	slug        string
	title       string
	depth       int
	frontmatter bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "md2toc [file...]",
		Short: "Print an HTML table of contents for a Markdown document",
		Long: `md2toc reads a Markdown document from standard input (or the named files)
and prints an HTML fragment linking to every '#' header line:

  <h2>Table of Contents</h2>
  <div class="toc toc-level-0"><a href="#title">Title</a></div>

Settings are read from .md2toc.yaml in the current directory or a parent,
and flags override them.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			svc, err := platform.NewFromConfig(cfg, slog.Default())
			if err != nil {
				return err
			}
			return generate(cmd, svc, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&g.config, "config", "", "Config file (default: .md2toc.yaml found from the working directory)")
	pf.StringVar(&g.scanner, "scanner", "line", `Heading scanner: "line" or "markdown"`)
	pf.StringVar(&g.slug, "slug", "simple", `Anchor style: "simple" or "normalize"`)
	pf.StringVar(&g.title, "title", "Table of Contents", "Header line text")
	pf.IntVar(&g.depth, "depth", 0, "Largest '#' count to include (0 for all)")
	pf.BoolVar(&g.frontmatter, "frontmatter", false, "Skip a leading front matter block")

	cmd.AddCommand(newBuildCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// resolve merges defaults, the config file and the flags set on cmd.
func (g *globalFlags) resolve(cmd *cobra.Command, extra ...platform.Option) (platform.Config, error) {
	opts := []platform.Option{platform.WithLogger(slog.Default())}

	if g.config != "" {
		opts = append(opts, platform.WithConfigFile(g.config))
	} else if wd, err := os.Getwd(); err == nil {
		opts = append(opts, platform.WithConfigSearch(wd))
	}

	flags := cmd.Flags()
	if flags.Changed("scanner") {
		opts = append(opts, platform.WithScanner(g.scanner))
	}
	if flags.Changed("slug") {
		opts = append(opts, platform.WithSlugger(g.slug))
	}
	if flags.Changed("title") {
		opts = append(opts, platform.WithTitle(g.title))
	}
	if flags.Changed("depth") {
		opts = append(opts, platform.WithDepth(g.depth))
	}
	if flags.Changed("frontmatter") {
		opts = append(opts, platform.WithFrontmatter(g.frontmatter))
	}

	return platform.Resolve(append(opts, extra...)...)
}

func generate(cmd *cobra.Command, svc *core.Service, files []string) error {
	in := cmd.InOrStdin()
	if len(files) > 0 {
		readers := make([]io.Reader, 0, 2*len(files))
		for _, name := range files {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			// Keep the last line of one file apart from the first of the next.
			readers = append(readers, f, strings.NewReader("\n"))
		}
		in = io.MultiReader(readers...)
	}

	n, err := svc.Generate(cmd.Context(), in, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	slog.Debug("table of contents written", "entries", n)
	return nil
}
