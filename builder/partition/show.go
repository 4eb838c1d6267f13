package partition

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/builder/models"
)

// Reconstruct rebuilds the full record of one post from the split outputs.
func Reconstruct(fsys afero.Fs, cfg *config.Config, slug string) (models.Post, error) {
	if msg := fileNameProblem(slug); msg != "" {
		return models.Post{}, fmt.Errorf("slug %q: %s: %w", slug, msg, ErrNotFound)
	}

	entries, err := LoadIndex(fsys, cfg.IndexPath())
	if err != nil {
		return models.Post{}, err
	}

	for _, entry := range entries {
		if s, ok := entry.SlugString(); !ok || s != slug {
			continue
		}
		content, err := LoadContent(fsys, filepath.Join(cfg.ContentPath(), ContentFileName(slug)))
		if err != nil {
			return models.Post{}, err
		}
		return models.Merge(entry, content), nil
	}
	return models.Post{}, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
}
