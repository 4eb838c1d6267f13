package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Kush-Singh-26/postsplit/builder/partition"
)

type verifyFailure struct {
	report *partition.VerifyReport
}

func (e *verifyFailure) Error() string {
	return "outputs are inconsistent"
}

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every index slug has exactly one content file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := partition.Verify(afero.NewOsFs(), opts.cfg)
			if err != nil {
				return err
			}
			printReport(report)
			if !report.OK() {
				return &verifyFailure{report: report}
			}
			return nil
		},
	}
}

func printReport(r *partition.VerifyReport) {
	fmt.Printf("🔍 %d index entries, %d content files\n", r.Entries, r.Files)
	if r.OK() {
		fmt.Println("✅ Index and content store agree")
		return
	}
	list := func(label string, items []string) {
		if len(items) > 0 {
			fmt.Printf("   ⚠️  %s (%d): %s\n", label, len(items), strings.Join(items, ", "))
		}
	}
	list("Missing content", r.Missing)
	list("Orphaned files", r.Orphaned)
	list("Slug mismatch", r.Mismatched)
	list("Unreadable", r.Corrupt)
	list("Duplicate slugs", r.Duplicates)
	if len(r.Unnamed) > 0 {
		fmt.Printf("   ⚠️  Entries without slug at positions %v\n", r.Unnamed)
	}
}
