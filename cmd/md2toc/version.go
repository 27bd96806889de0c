package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rbossy/md2toc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of md2toc",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "md2toc version %s\n", strings.TrimSpace(md2toc.Version))
		},
	}
}
