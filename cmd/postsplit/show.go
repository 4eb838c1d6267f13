package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/postsplit/builder/partition"
	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <slug>",
		Short:   "Print a post rebuilt from its index entry and content file",
		Example: `postsplit show getting-started`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := partition.Reconstruct(afero.NewOsFs(), opts.cfg, args[0])
			if err != nil {
				return err
			}
			out, err := utils.MarshalJSON(post, "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
