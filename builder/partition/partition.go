// Package partition splits a monolithic blog posts document into a list-view
// index and one content file per post.
package partition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/postsplit/builder/cache"
	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/builder/metrics"
	"github.com/Kush-Singh-26/postsplit/builder/models"
	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

// Partitioner runs the split against a filesystem.
type Partitioner struct {
	fs       afero.Fs
	cfg      *config.Config
	manifest *cache.Manager
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Partitioner)

// WithManifest records written files in a BoltDB manifest.
func WithManifest(m *cache.Manager) Option {
	return func(p *Partitioner) { p.manifest = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Partitioner) { p.logger = l }
}

func New(fs afero.Fs, cfg *config.Config, opts ...Option) *Partitioner {
	p := &Partitioner{
		fs:     fs,
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChangeSet compares this run's content files with the manifest of the previous run.
type ChangeSet struct {
	Added     []string
	Updated   []string
	Removed   []string
	Unchanged []string
}

// Result describes a finished run.
type Result struct {
	Posts      int
	IndexPath  string
	ContentDir string
	Changes    *ChangeSet // nil without a manifest
	Metrics    *metrics.RunMetrics
}

type contentTask struct {
	pos   int
	slug  string
	entry models.ContentEntry
}

// Run reads the input, validates it, writes the index and fans out content files.
// Nothing is written when reading, parsing or validation fails. A write failure
// stops the run; files already written stay on disk.
func (p *Partitioner) Run(ctx context.Context) (*Result, error) {
	m := metrics.NewRunMetrics()
	inputPath := p.cfg.InputPath()
	indexPath := p.cfg.IndexPath()
	contentDir := p.cfg.ContentPath()

	readStart := time.Now()
	data, err := afero.ReadFile(p.fs, inputPath)
	if err != nil {
		return nil, &Error{Kind: KindRead, Path: inputPath, Err: err}
	}
	m.InputBytes = int64(len(data))

	posts, err := Decode(data)
	if err != nil {
		return nil, &Error{Kind: KindParse, Path: inputPath, Err: err}
	}

	slugs, err := Validate(posts, p.cfg.Policy)
	if err != nil {
		return nil, &Error{Kind: KindValidate, Path: inputPath, Err: err}
	}
	if err := CheckTargets(slugs, contentDir, indexPath, inputPath); err != nil {
		return nil, &Error{Kind: KindValidate, Path: inputPath, Err: err}
	}
	m.PostsProcessed = len(posts)
	m.ReadTime = time.Since(readStart)

	indexData, err := EncodeIndex(Project(posts), p.cfg.CompactIndex)
	if err != nil {
		return nil, &Error{Kind: KindWrite, Path: indexPath, Err: fmt.Errorf("failed to encode index: %w", err)}
	}

	writeStart := time.Now()
	if err := p.fs.MkdirAll(contentDir, 0755); err != nil {
		return nil, &Error{Kind: KindWrite, Path: contentDir, Err: err}
	}
	if dir := filepath.Dir(indexPath); dir != "." {
		if err := p.fs.MkdirAll(dir, 0755); err != nil {
			return nil, &Error{Kind: KindWrite, Path: dir, Err: err}
		}
	}

	written, err := p.writeArtifact(indexPath, indexData)
	if err != nil {
		return nil, err
	}
	m.RecordIndex(int64(len(indexData)), written)

	previous := p.loadManifest()

	metas := make([]*cache.ContentMeta, len(posts))
	pool := utils.NewWorkerPool(ctx, p.cfg.Workers, func(_ context.Context, t contentTask) error {
		body, err := EncodeContent(t.entry)
		if err != nil {
			return &Error{Kind: KindWrite, Path: t.slug, Err: fmt.Errorf("failed to encode content: %w", err)}
		}

		name := ContentFileName(t.slug)
		written, err := p.writeArtifact(filepath.Join(contentDir, name), body)
		if err != nil {
			return err
		}
		m.RecordContent(int64(len(body)), written)

		metas[t.pos] = &cache.ContentMeta{
			Slug:      t.slug,
			File:      name,
			Hash:      cache.HashContent(body),
			Size:      int64(len(body)),
			UpdatedAt: p.now().Unix(),
		}
		return nil
	})
	pool.Start()
	for i, entry := range Contents(posts) {
		if !pool.Submit(contentTask{pos: i, slug: slugs[i], entry: entry}) {
			break
		}
	}
	fanOutErr := pool.Wait()

	// metas of files that reached disk are recorded even when the fan-out failed
	done := make([]*cache.ContentMeta, 0, len(metas))
	for _, meta := range metas {
		if meta != nil {
			done = append(done, meta)
		}
	}
	changes := diff(previous, done, slugs)
	p.recordManifest(previous, done)

	if fanOutErr != nil {
		var pe *Error
		if errors.As(fanOutErr, &pe) {
			return nil, fanOutErr
		}
		return nil, fmt.Errorf("content fan-out interrupted: %w", fanOutErr)
	}

	if p.cfg.Prune {
		pruned, err := p.prune(previous, slugs)
		m.AddPruned(len(pruned))
		if err != nil {
			return nil, err
		}
	}
	m.WriteTime = time.Since(writeStart)

	if p.manifest != nil {
		rec := &cache.RunRecord{
			InputHash: cache.HashContent(data),
			IndexHash: cache.HashContent(indexData),
			Posts:     len(posts),
			Written:   m.FilesWritten,
			Skipped:   m.FilesSkipped,
			Pruned:    m.FilesPruned,
			RunAt:     p.now().Unix(),
		}
		if err := p.manifest.SetLastRun(rec); err != nil {
			p.logger.Warn("Failed to record run in manifest", "error", err)
		}
	}

	m.RecordEnd()
	res := &Result{
		Posts:      len(posts),
		IndexPath:  indexPath,
		ContentDir: contentDir,
		Metrics:    m,
	}
	if previous != nil {
		res.Changes = changes
	}
	return res, nil
}

// writeArtifact writes data and its precompressed siblings, skipping files that
// already hold identical bytes. It reports whether the main file was written.
func (p *Partitioner) writeArtifact(path string, data []byte) (bool, error) {
	written, err := p.writeIfChanged(path, data)
	if err != nil {
		return false, err
	}

	for _, format := range []string{config.FormatGzip, config.FormatZstd} {
		if !p.cfg.HasFormat(format) {
			continue
		}
		var (
			packed []byte
			ext    string
		)
		switch format {
		case config.FormatGzip:
			packed, err = utils.Gzip(data)
			ext = utils.GzipExt
		case config.FormatZstd:
			packed, err = utils.Zstd(data)
			ext = utils.ZstdExt
		}
		if err != nil {
			return written, &Error{Kind: KindWrite, Path: path + ext, Err: err}
		}
		if _, err := p.writeIfChanged(path+ext, packed); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (p *Partitioner) writeIfChanged(path string, data []byte) (bool, error) {
	if existing, err := afero.ReadFile(p.fs, path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := afero.WriteFile(p.fs, path, data, 0644); err != nil {
		return false, &Error{Kind: KindWrite, Path: path, Err: err}
	}
	p.logger.Debug("wrote file", "path", path, "bytes", len(data))
	return true, nil
}

// loadManifest returns nil when no manifest is configured or it cannot be read
func (p *Partitioner) loadManifest() map[string]*cache.ContentMeta {
	if p.manifest == nil {
		return nil
	}
	prev, err := p.manifest.AllContent()
	if err != nil {
		p.logger.Warn("Failed to read manifest, change report disabled", "error", err)
		return nil
	}
	return prev
}

func (p *Partitioner) recordManifest(previous map[string]*cache.ContentMeta, done []*cache.ContentMeta) {
	if p.manifest == nil {
		return
	}

	// unchanged files keep their original timestamp
	for _, meta := range done {
		if old, ok := previous[meta.Slug]; ok && old.Hash == meta.Hash {
			meta.UpdatedAt = old.UpdatedAt
		}
	}
	if err := p.manifest.BatchPut(done); err != nil {
		p.logger.Warn("Failed to update manifest", "error", err)
	}
}

// prune removes content files of slugs that are no longer in the input.
// With a manifest only files this tool recorded are candidates; without one
// every *.json in the content directory is.
func (p *Partitioner) prune(previous map[string]*cache.ContentMeta, slugs []string) ([]string, error) {
	current := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		current[s] = true
	}

	var candidates []string
	if previous != nil {
		for slug := range previous {
			if !current[slug] {
				candidates = append(candidates, slug)
			}
		}
	} else {
		names, err := listContentSlugs(p.fs, p.cfg.ContentPath())
		if err != nil {
			return nil, &Error{Kind: KindWrite, Path: p.cfg.ContentPath(), Err: err}
		}
		for _, slug := range names {
			if !current[slug] {
				candidates = append(candidates, slug)
			}
		}
	}
	sort.Strings(candidates)

	indexPath := filepath.Clean(p.cfg.IndexPath())
	pruned := make([]string, 0, len(candidates))
	for _, slug := range candidates {
		base := filepath.Join(p.cfg.ContentPath(), ContentFileName(slug))
		if base == indexPath {
			continue
		}
		for _, path := range []string{base, base + utils.GzipExt, base + utils.ZstdExt} {
			if err := p.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return pruned, &Error{Kind: KindWrite, Path: path, Err: err}
			}
		}
		pruned = append(pruned, slug)
		p.logger.Debug("pruned stale content", "slug", slug)
	}

	if p.manifest != nil {
		if err := p.manifest.DeleteContent(pruned); err != nil {
			p.logger.Warn("Failed to drop pruned slugs from manifest", "error", err)
		}
	}
	return pruned, nil
}

func diff(previous map[string]*cache.ContentMeta, done []*cache.ContentMeta, slugs []string) *ChangeSet {
	cs := &ChangeSet{}
	for _, meta := range done {
		old, ok := previous[meta.Slug]
		switch {
		case !ok:
			cs.Added = append(cs.Added, meta.Slug)
		case old.Hash != meta.Hash:
			cs.Updated = append(cs.Updated, meta.Slug)
		default:
			cs.Unchanged = append(cs.Unchanged, meta.Slug)
		}
	}

	current := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		current[s] = true
	}
	for slug := range previous {
		if !current[slug] {
			cs.Removed = append(cs.Removed, slug)
		}
	}
	sort.Strings(cs.Removed)
	return cs
}

// listContentSlugs returns the slugs of *.json files in dir, sorted.
func listContentSlugs(fsys afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var slugs []string
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		slugs = append(slugs, name[:len(name)-len(".json")])
	}
	sort.Strings(slugs)
	return slugs, nil
}
