package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/postsplit/internal/split"
	"github.com/Kush-Singh-26/postsplit/internal/watch"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	flags := &splitFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Split once, then again whenever the input changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := flags.apply(cmd, opts.cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			cfg := opts.cfg

			if _, err := split.Run(ctx, cfg, opts.logger); err != nil {
				// a broken input is expected while editing; keep watching
				fmt.Printf("❌ %v\n", err)
			}

			w, err := watch.New([]string{cfg.InputPath()}, cfg.DebounceDuration, func(ev watch.Event) {
				fmt.Printf("\n📝 %s changed, re-splitting...\n", ev.Name)
				if _, err := split.Run(ctx, cfg, opts.logger); err != nil {
					fmt.Printf("❌ %v\n", err)
				}
			})
			if err != nil {
				return err
			}

			fmt.Printf("👀 Watching %s (Ctrl+C to stop)\n", cfg.InputPath())
			return w.Start(ctx)
		},
	}
	flags.register(cmd)
	return cmd
}
