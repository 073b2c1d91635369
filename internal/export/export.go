// Package export turns a render.Source into files on disk. Every requested
// format is rendered before anything is written, and only one export runs
// at a time per Exporter.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sowbuilder/internal/logging"
	"sowbuilder/internal/render"
	"sowbuilder/internal/sow"
)

// UserMessage is what the user sees when generation fails.
const UserMessage = "Error generating document. Please try again."

var (
	// ErrInFlight is returned when an export is already running.
	ErrInFlight = errors.New("an export is already in progress")
	// ErrNoRenderer is returned for a format with no registered renderer.
	ErrNoRenderer = errors.New("no renderer registered")
)

// GenerationError wraps a failure to produce or write one format.
type GenerationError struct {
	Format render.Kind
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Format, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// File is one written document.
type File struct {
	Kind render.Kind
	Path string
	Size int
}

// Result reports a completed export.
type Result struct {
	ID    uuid.UUID
	Files []File
}

// Exporter renders and writes documents into a directory.
type Exporter struct {
	dir       string
	renderers map[render.Kind]render.Renderer
	now       func() time.Time
	newID     func() uuid.UUID

	inFlight atomic.Bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock sets the clock used for file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithIDs sets the export ID source.
func WithIDs(newID func() uuid.UUID) Option {
	return func(e *Exporter) { e.newID = newID }
}

// New returns an Exporter writing into dir with the given renderers.
func New(dir string, renderers []render.Renderer, opts ...Option) *Exporter {
	e := &Exporter{
		dir:       dir,
		renderers: make(map[render.Kind]render.Renderer, len(renderers)),
		now:       time.Now,
		newID:     uuid.New,
	}
	for _, r := range renderers {
		e.renderers[r.Kind()] = r
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir is the output directory.
func (e *Exporter) Dir() string { return e.dir }

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool { return e.inFlight.Load() }

// FileName is SOW-{client}-{YYYY-MM-DD}.{ext} with whitespace runs in the
// client company name replaced by hyphens.
func FileName(rec *sow.EngagementRecord, kind render.Kind, at time.Time) string {
	return fmt.Sprintf("SOW-%s-%s.%s", rec.ClientSlug(), at.Format("2006-01-02"), kind.Ext())
}

// Export renders src in one format and writes it. rec supplies the file name.
func (e *Exporter) Export(ctx context.Context, rec *sow.EngagementRecord, kind render.Kind, src render.Source) (File, error) {
	res, err := e.ExportAll(ctx, rec, []render.Kind{kind}, src)
	if err != nil {
		return File{}, err
	}
	return res.Files[0], nil
}

// ExportAll renders every kind concurrently, then writes them. No file is
// written unless all renders succeed.
func (e *Exporter) ExportAll(ctx context.Context, rec *sow.EngagementRecord, kinds []render.Kind, src render.Source) (Result, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		logging.Export("export rejected: another export is in flight")
		return Result{}, ErrInFlight
	}
	defer e.inFlight.Store(false)

	id := e.newID()
	at := e.now()
	log := logging.Get(logging.CategoryExport).With("export_id", id.String())
	log.Info("export started: formats=%v override=%v dir=%s", kinds, src.IsOverride(), e.dir)

	renderers := make([]render.Renderer, len(kinds))
	for i, kind := range kinds {
		r, ok := e.renderers[kind]
		if !ok {
			logging.ExportError("no renderer registered for %s", kind)
			return Result{}, &GenerationError{Format: kind, Err: ErrNoRenderer}
		}
		renderers[i] = r
	}

	outputs := make([][]byte, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			data, err := renderers[i].Render(gctx, src)
			if err != nil {
				return &GenerationError{Format: kind, Err: err}
			}
			outputs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("export failed: %v", err)
		return Result{}, err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		logging.ExportError("create %s: %v", e.dir, err)
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := Result{ID: id}
	for i, kind := range kinds {
		path := filepath.Join(e.dir, FileName(rec, kind, at))
		if err := writeAtomic(path, outputs[i]); err != nil {
			for _, f := range res.Files {
				_ = os.Remove(f.Path)
			}
			log.Error("write %s failed: %v", path, err)
			return Result{}, &GenerationError{Format: kind, Err: err}
		}
		res.Files = append(res.Files, File{Kind: kind, Path: path, Size: len(outputs[i])})
		log.Info("wrote %s (%s)", path, humanize.Bytes(uint64(len(outputs[i]))))
	}
	return res, nil
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sow-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
