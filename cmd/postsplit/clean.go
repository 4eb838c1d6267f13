package main

import (
	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/postsplit/internal/clean"
)

func newCleanCmd(opts *rootOptions) *cobra.Command {
	var cache bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the index and the content directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := clean.Run(opts.cfg, cache)
			return err
		},
	}
	cmd.Flags().BoolVar(&cache, "cache", false, "also remove the manifest cache")
	return cmd
}
