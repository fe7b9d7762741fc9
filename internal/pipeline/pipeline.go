// Package pipeline walks the input tree and captions each supported image
// into a mirrored output tree, one file at a time.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/johananj/geocaption/internal/archive"
	"github.com/johananj/geocaption/internal/config"
	"github.com/johananj/geocaption/internal/exif"
	"github.com/johananj/geocaption/internal/geocode"
	"github.com/johananj/geocaption/internal/journal"
	"github.com/johananj/geocaption/internal/logger"
	"github.com/johananj/geocaption/internal/metadata"
	"github.com/johananj/geocaption/internal/progress"
	"github.com/johananj/geocaption/internal/render"
)

// Candidate files by case-insensitive extension.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".bmp":  true,
	".gif":  true,
}

// IsSupported reports whether filename is a candidate image.
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// job is one (input, output) pair, independent of all other jobs.
type job struct {
	inPath  string
	relPath string
}

// Pipeline runs the caption batch.
type Pipeline struct {
	cfg      *config.Config
	resolver geocode.Resolver
	renderer *render.Renderer
	journal  *journal.Journal
	archiver *archive.Archiver
	progress *progress.Reporter
}

// New creates a Pipeline. archiver may be nil when no S3 destination is
// configured.
func New(cfg *config.Config, resolver geocode.Resolver, renderer *render.Renderer,
	jnl *journal.Journal, arch *archive.Archiver, rep *progress.Reporter) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		resolver: resolver,
		renderer: renderer,
		journal:  jnl,
		archiver: arch,
		progress: rep,
	}
}

// Run processes every candidate file under the input root, strictly
// sequentially. Per-file failures are logged and the batch continues; only a
// missing input root or a canceled context aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	info, err := os.Stat(p.cfg.Input)
	if err != nil {
		return fmt.Errorf("input folder %s does not exist: %w", p.cfg.Input, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", p.cfg.Input)
	}
	if err := os.MkdirAll(p.cfg.Output, 0755); err != nil {
		return fmt.Errorf("failed to create output folder %s: %w", p.cfg.Output, err)
	}

	jobs, err := p.collect(ctx)
	if err != nil {
		return err
	}

	p.progress.Start(len(jobs))

	for _, jb := range jobs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if p.cfg.Run.Resume && p.journal.IsProcessed(jb.relPath) {
			logger.Debug("Skipping %s: already in journal", jb.relPath)
			p.progress.Skipped(jb.relPath)
			continue
		}

		if err := p.process(ctx, jb); err != nil {
			logger.Error("Failed to process %s: %v", jb.inPath, err)
			p.progress.Failed(jb.inPath, err)
			continue
		}

		p.progress.Saved(jb.relPath)
		if p.cfg.Run.Resume {
			p.journal.MarkProcessed(jb.relPath, filepath.Join(p.cfg.Output, jb.relPath))
			if err := p.journal.Save(); err != nil {
				logger.Warn("Could not save journal: %v", err)
			}
		}
	}

	p.progress.Finish()
	return nil
}

// collect walks the input tree and gathers candidate files. Unsupported
// extensions never become jobs.
func (p *Pipeline) collect(ctx context.Context) ([]job, error) {
	var jobs []job

	err := filepath.WalkDir(p.cfg.Input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !IsSupported(d.Name()) {
			logger.Debug("Ignoring unsupported file %s", path)
			return nil
		}

		rel, err := filepath.Rel(p.cfg.Input, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{inPath: path, relPath: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input folder: %w", err)
	}
	return jobs, nil
}

// process captions and saves a single file. Missing metadata degrades to
// sentinel caption values; only decode/draw/save errors fail the job.
func (p *Pipeline) process(ctx context.Context, jb job) error {
	rec := metadata.Record{Timestamp: metadata.UnknownDate}
	if src, err := exif.Load(jb.inPath); err != nil {
		logger.Debug("No EXIF data in %s: %v", jb.inPath, err)
	} else {
		rec = metadata.Extract(src)
	}

	rec.Place = geocode.UnknownLocation
	if rec.Coordinate != nil {
		rec.Place = p.resolver.Resolve(ctx, *rec.Coordinate)
	}

	img, err := render.Open(jb.inPath)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	img = render.Fit(img, p.cfg.Overlay.MaxSize)

	captioned := p.renderer.Draw(img, rec.Caption())

	outPath := filepath.Join(p.cfg.Output, jb.relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := render.Save(captioned, outPath, render.ExifSegment(jb.inPath)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	logger.Info("Processed and saved %s", outPath)

	if p.archiver != nil {
		if err := p.archiver.Archive(ctx, outPath, jb.relPath); err != nil {
			logger.Warn("Failed to archive %s: %v", jb.relPath, err)
		}
	}
	return nil
}
