// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/pdspec"
	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/imaging"
)

// Input is a directory whose recordings share one label.
type Input struct {
	Dir   string
	Label Label
}

type Result struct {
	RunID   string
	Records []Record
	Skipped []Skip
}

type Builder struct {
	pipeline *pdspec.Pipeline
	outDir   string
	cache    Cache
	workers  int
	seed     uint64
	copies   int
	log      *zap.Logger
}

type Option func(*Builder)

func WithPipeline(p *pdspec.Pipeline) Option {
	return func(b *Builder) { b.pipeline = p }
}

func WithCache(c Cache) Option {
	return func(b *Builder) { b.cache = c }
}

// WithWorkers bounds the number of files processed at once.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

func WithSeed(seed uint64) Option {
	return func(b *Builder) { b.seed = seed }
}

// WithAugmentedCopies adds n augmented renderings per file.
func WithAugmentedCopies(n int) Option {
	return func(b *Builder) { b.copies = max(0, n) }
}

func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBuilder writes images into outDir. Defaults: a default pipeline, a
// FileCache, one worker per CPU and seed 42.
func NewBuilder(outDir string, opts ...Option) *Builder {
	b := &Builder{
		outDir: outDir,
		cache:  FileCache{},
		seed:   42,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.pipeline == nil {
		b.pipeline = pdspec.New(pdspec.WithLogger(b.log))
	}
	if b.workers <= 0 {
		b.workers = max(1, runtime.GOMAXPROCS(0))
	}

	return b
}

type job struct {
	index int
	path  string
	label Label
}

// collect lists the supported files of every input, sorted per directory.
// A file whose image name is already taken by an earlier file is returned
// as a Skip instead of a job.
func (b *Builder) collect(inputs []Input, log *zap.Logger) ([]job, []Skip, error) {
	var (
		jobs    []job
		skipped []Skip
	)
	owners := make(map[string]string)

	for _, in := range inputs {
		entries, err := os.ReadDir(in.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("listing %s: %w", in.Dir, err)
		}

		// ReadDir returns entries sorted by name.
		for _, e := range entries {
			if e.IsDir() {
				continue
			}

			path := filepath.Join(in.Dir, e.Name())
			if !b.pipeline.Loader().Supports(e.Name()) {
				log.Debug("ignoring unsupported file", zap.String("path", path))
				continue
			}

			out := OutputPath(b.outDir, path, in.Label, 0)
			if first, ok := owners[out]; ok {
				err := fmt.Errorf("%w: %s already names %s", ErrDuplicateOutput, first, filepath.Base(out))
				skipped = append(skipped, Skip{Path: path, Label: in.Label, Err: err})
				log.Warn("skipping file",
					zap.String("path", path),
					zap.Stringer("label", in.Label),
					zap.Error(err),
				)
				continue
			}
			owners[out] = path

			jobs = append(jobs, job{
				index: len(jobs),
				path:  path,
				label: in.Label,
			})
		}
	}

	return jobs, skipped, nil
}

// Build renders every supported file under inputs. Failing files become
// Skip entries; only listing errors and cancellation fail the build.
func (b *Builder) Build(ctx context.Context, inputs ...Input) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	res := &Result{RunID: uuid.NewString()}
	log := b.log.With(zap.String("run_id", res.RunID))
	start := time.Now()

	jobs, skipped, err := b.collect(inputs, log)
	if err != nil {
		return nil, err
	}
	res.Skipped = skipped

	if err := os.MkdirAll(b.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	log.Info("dataset build started",
		zap.Int("files", len(jobs)),
		zap.Int("workers", b.workers),
		zap.Int("augmented_copies", b.copies),
		zap.String("output_dir", b.outDir),
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			recs, err := b.process(j)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Skipped = append(res.Skipped, Skip{Path: j.path, Label: j.label, Err: err})
				log.Warn("skipping file",
					zap.String("path", j.path),
					zap.Stringer("label", j.label),
					zap.Error(err),
				)
				return nil
			}

			res.Records = append(res.Records, recs...)
			log.Info("file processed",
				zap.String("path", j.path),
				zap.Stringer("label", j.label),
				zap.String("output", recs[0].SpectrogramPath),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		log.Warn("dataset build cancelled", zap.Error(err))
		return nil, err
	}

	sortRecords(res.Records)
	slices.SortFunc(res.Skipped, func(a, b Skip) int { return cmp.Compare(a.Path, b.Path) })

	log.Info("dataset build finished",
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// process renders the plain image and the augmented copies of one file.
func (b *Builder) process(j job) ([]Record, error) {
	rng := rand.New(rand.NewPCG(b.seed, uint64(j.index)))

	// Seeds are drawn up front so a cache hit on one copy does not shift
	// the randomness of the next.
	seeds := make([]uint64, b.copies)
	for k := range seeds {
		seeds[k] = rng.Uint64()
	}

	var (
		w      audio.Waveform
		loaded bool
	)
	load := func() (audio.Waveform, error) {
		if loaded {
			return w, nil
		}

		var err error
		w, err = b.pipeline.Loader().Load(j.path)
		if err != nil {
			return w, err
		}
		loaded = true

		return w, nil
	}

	render := func(variant int) (Record, error) {
		out := OutputPath(b.outDir, j.path, j.label, variant)

		img, err := b.cache.GetOrCompute(out, func() (*imaging.Image, error) {
			w, err := load()
			if err != nil {
				return nil, err
			}
			if variant == 0 {
				return b.pipeline.Render(w), nil
			}

			r := rand.New(rand.NewPCG(seeds[variant-1], uint64(variant)))
			return b.pipeline.RenderAugmented(w, r), nil
		})
		if err != nil {
			return Record{}, err
		}

		if err := ensureWritten(out, img); err != nil {
			return Record{}, err
		}

		return Record{
			Filename:        filepath.Base(j.path),
			SpectrogramPath: out,
			Label:           j.label,
			OriginalPath:    j.path,
		}, nil
	}

	recs := make([]Record, 0, b.copies+1)
	for variant := range b.copies + 1 {
		rec, err := render(variant)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// ensureWritten writes img to path unless the cache already put it there.
func ensureWritten(path string, img *imaging.Image) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return imaging.WritePNG(path, img)
}
