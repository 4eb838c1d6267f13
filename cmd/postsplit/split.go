package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/internal/split"
)

type splitFlags struct {
	dataDir      string
	input        string
	index        string
	contentDir   string
	strict       bool
	prune        bool
	workers      int
	noManifest   bool
	compactIndex bool
	precompress  []string
}

func (f *splitFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.dataDir, "data-dir", "", "directory relative paths resolve against")
	fl.StringVarP(&f.input, "input", "i", "", "input posts document")
	fl.StringVarP(&f.index, "index", "o", "", "index document to write")
	fl.StringVar(&f.contentDir, "content-dir", "", "directory for per-post content files")
	fl.BoolVar(&f.strict, "strict", false, "reject posts with missing or mistyped fields")
	fl.BoolVar(&f.prune, "prune", false, "delete content files of posts no longer in the input")
	fl.IntVarP(&f.workers, "workers", "w", 0, "content writers (2..32)")
	fl.BoolVar(&f.noManifest, "no-manifest", false, "skip the change-tracking manifest")
	fl.BoolVar(&f.compactIndex, "compact-index", false, "write the index without indentation")
	fl.StringSliceVar(&f.precompress, "precompress", nil, "write compressed siblings (gzip, zstd)")
}

// apply overrides config values with the flags the user actually set
func (f *splitFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if fl.Changed("input") {
		cfg.Input = f.input
	}
	if fl.Changed("index") {
		cfg.Index = f.index
	}
	if fl.Changed("content-dir") {
		cfg.ContentDir = f.contentDir
	}
	if fl.Changed("strict") {
		cfg.Policy = config.PolicyLenient
		if f.strict {
			cfg.Policy = config.PolicyStrict
		}
	}
	if fl.Changed("prune") {
		cfg.Prune = f.prune
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("no-manifest") {
		cfg.UseManifest = !f.noManifest
	}
	if fl.Changed("compact-index") {
		cfg.CompactIndex = f.compactIndex
	}
	if fl.Changed("precompress") {
		cfg.Precompress = f.precompress
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func newSplitCmd(opts *rootOptions) *cobra.Command {
	flags := &splitFlags{}
	cmd := &cobra.Command{
		Use:     "split",
		Short:   "Write the index and one content file per post",
		Example: `postsplit split --input posts.json --content-dir blog-content --prune`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := flags.apply(cmd, opts.cfg); err != nil {
				return err
			}
			_, err := split.Run(cmd.Context(), opts.cfg, opts.logger)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
