// Package clean removes generated outputs.
package clean

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

// Run deletes the index (with precompressed siblings) and the content
// directory. The manifest cache is only removed when cleanCache is set.
// The input document is never touched.
func Run(cfg *config.Config, cleanCache bool) (int, error) {
	start := time.Now()
	removed := 0

	index := cfg.IndexPath()
	for _, path := range []string{index, index + utils.GzipExt, index + utils.ZstdExt} {
		ok, err := removeFile(path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}

	targets := []string{cfg.ContentPath()}
	if cleanCache {
		targets = append(targets, cfg.CachePath())
	}
	for _, dir := range targets {
		if contains(dir, cfg.InputPath()) {
			return removed, fmt.Errorf("refusing to remove %s: it contains the input document", dir)
		}
		ok, err := removeDir(dir)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}

	fmt.Printf("🧹 Cleaned %d paths in %v\n", removed, time.Since(start))
	return removed, nil
}

func removeFile(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return true, nil
}

// removeDir renames the directory aside first so a half-deleted tree never
// sits under the original name.
func removeDir(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	tempPath := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("%s_deleting_%d", filepath.Base(path), time.Now().UnixNano()))

	fmt.Printf("🧹 Removing '%s'...\n", path)
	if err := os.Rename(path, tempPath); err != nil {
		fmt.Printf("⚠️ Rename failed (%v), deleting in place...\n", err)
		tempPath = path
	}
	if err := os.RemoveAll(tempPath); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return true, nil
}

// contains reports whether path is dir itself or lies below it
func contains(dir, path string) bool {
	absDir, errA := filepath.Abs(dir)
	absPath, errB := filepath.Abs(path)
	if errA != nil || errB != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
