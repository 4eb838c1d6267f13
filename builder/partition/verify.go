package partition

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/builder/models"
)

// VerifyReport lists every break of the index <-> content store contract.
type VerifyReport struct {
	Entries    int
	Files      int
	Missing    []string // in the index, no content file
	Orphaned   []string // content file, not in the index
	Mismatched []string // content file whose slug differs from its name
	Corrupt    []string // content file that does not parse
	Duplicates []string // slug listed more than once in the index
	Unnamed    []int    // index positions without a string slug
}

// OK reports whether every slug maps to exactly one content file and back.
func (r *VerifyReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Orphaned) == 0 && len(r.Mismatched) == 0 &&
		len(r.Corrupt) == 0 && len(r.Duplicates) == 0 && len(r.Unnamed) == 0
}

// LoadIndex reads and parses the index document.
func LoadIndex(fsys afero.Fs, path string) ([]models.IndexEntry, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &Error{Kind: KindRead, Path: path, Err: err}
	}
	var entries []models.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &Error{Kind: KindParse, Path: path, Err: err}
	}
	return entries, nil
}

// LoadContent reads one content file.
func LoadContent(fsys afero.Fs, path string) (models.ContentEntry, error) {
	var entry models.ContentEntry
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return entry, &Error{Kind: KindRead, Path: path, Err: err}
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, &Error{Kind: KindParse, Path: path, Err: err}
	}
	return entry, nil
}

// Verify checks the outputs of a previous run.
func Verify(fsys afero.Fs, cfg *config.Config) (*VerifyReport, error) {
	entries, err := LoadIndex(fsys, cfg.IndexPath())
	if err != nil {
		return nil, err
	}

	files, err := listContentSlugs(fsys, cfg.ContentPath())
	if err != nil {
		return nil, &Error{Kind: KindRead, Path: cfg.ContentPath(), Err: err}
	}

	report := &VerifyReport{Entries: len(entries), Files: len(files)}
	onDisk := make(map[string]bool, len(files))
	for _, slug := range files {
		onDisk[slug] = true
	}

	indexed := make(map[string]bool, len(entries))
	for i, entry := range entries {
		slug, ok := entry.SlugString()
		if !ok {
			report.Unnamed = append(report.Unnamed, i)
			continue
		}
		if indexed[slug] {
			report.Duplicates = append(report.Duplicates, slug)
			continue
		}
		indexed[slug] = true

		if !onDisk[slug] {
			report.Missing = append(report.Missing, slug)
			continue
		}

		content, err := LoadContent(fsys, filepath.Join(cfg.ContentPath(), ContentFileName(slug)))
		if err != nil {
			report.Corrupt = append(report.Corrupt, slug)
			continue
		}
		if got, ok := content.SlugString(); !ok || got != slug {
			report.Mismatched = append(report.Mismatched, slug)
		}
	}

	indexFile := filepath.Clean(cfg.IndexPath())
	for _, slug := range files {
		if indexed[slug] {
			continue
		}
		if filepath.Join(cfg.ContentPath(), ContentFileName(slug)) == indexFile {
			continue
		}
		report.Orphaned = append(report.Orphaned, slug)
	}
	sort.Strings(report.Orphaned)
	return report, nil
}
