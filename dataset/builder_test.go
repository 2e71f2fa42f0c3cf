// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/pdspec/imaging"
	"github.com/ik5/pdspec/internal/audiotest"
	"github.com/ik5/pdspec/loader"
)

// writeCorpus creates control and pd directories with good recordings,
// corrupt ones and a file the loader does not handle.
func writeCorpus(t *testing.T) (control, pd string) {
	t.Helper()

	root := t.TempDir()
	control = filepath.Join(root, "hc")
	pd = filepath.Join(root, "pd")
	for _, d := range []string{control, pd} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	for i, f0 := range []float64{170, 190, 210} {
		audiotest.WriteWAV(t, control, "c"+string(rune('1'+i))+".wav", 16000, audiotest.Voice(16000, 12000, f0, 0.5))
	}
	audiotest.WriteFile(t, control, "broken.wav", []byte("RIFF....junk"))

	for i, f0 := range []float64{100, 120} {
		audiotest.WriteWAV(t, pd, "p"+string(rune('1'+i))+".wav", 16000, audiotest.Voice(16000, 12000, f0, 0.5))
	}
	audiotest.WriteFile(t, pd, "empty.wav", nil)
	audiotest.WriteFile(t, pd, "notes.txt", []byte("ignored"))

	return control, pd
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	control, pd := writeCorpus(t)
	out := filepath.Join(t.TempDir(), "images")
	core, logs := observer.New(zapcore.InfoLevel)

	b := NewBuilder(out, WithWorkers(3), WithLogger(zap.New(core)))
	res, err := b.Build(context.Background(), Input{control, Control}, Input{pd, Parkinsons})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(res.Records) != 5 {
		t.Fatalf("records = %d, want 5", len(res.Records))
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("skipped = %d, want 2", len(res.Skipped))
	}
	if res.RunID == "" {
		t.Error("empty run id")
	}

	if !slices.IsSortedFunc(res.Records, func(a, b Record) int {
		return strings.Compare(a.SpectrogramPath, b.SpectrogramPath)
	}) {
		t.Error("records not sorted by output path")
	}

	for _, r := range res.Records {
		img, err := imaging.ReadPNG(r.SpectrogramPath)
		if err != nil {
			t.Errorf("%s: %v", r.SpectrogramPath, err)
			continue
		}
		if img.Width != 224 || img.Height != 224 {
			t.Errorf("%s is %dx%d", r.SpectrogramPath, img.Width, img.Height)
		}
		if want := OutputPath(out, r.OriginalPath, r.Label, 0); r.SpectrogramPath != want {
			t.Errorf("path = %s, want %s", r.SpectrogramPath, want)
		}
		if r.Filename != filepath.Base(r.OriginalPath) {
			t.Errorf("filename = %s for %s", r.Filename, r.OriginalPath)
		}
	}

	wantSkips := []string{filepath.Join(control, "broken.wav"), filepath.Join(pd, "empty.wav")}
	for i, s := range res.Skipped {
		if s.Path != wantSkips[i] {
			t.Errorf("skip %d = %s, want %s", i, s.Path, wantSkips[i])
		}
		var le *loader.LoadError
		if !errors.As(s.Err, &le) {
			t.Errorf("skip %s error = %v, want *loader.LoadError", s.Path, s.Err)
		}
	}

	warns := logs.FilterMessage("skipping file").All()
	if len(warns) != 2 {
		t.Fatalf("skip warnings = %d, want 2", len(warns))
	}
	for _, e := range warns {
		ctx := e.ContextMap()
		if ctx["run_id"] != res.RunID || ctx["path"] == nil || ctx["label"] == nil {
			t.Errorf("warning fields = %v", ctx)
		}
	}

	done := logs.FilterMessage("dataset build finished").All()
	if len(done) != 1 {
		t.Fatalf("summary entries = %d, want 1", len(done))
	}
	if ctx := done[0].ContextMap(); ctx["records"] != int64(5) || ctx["skipped"] != int64(2) {
		t.Errorf("summary fields = %v", ctx)
	}
	if n := logs.FilterMessage("file processed").Len(); n != 5 {
		t.Errorf("processed entries = %d, want 5", n)
	}
}

func TestBuilder_DuplicateOutputNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	siteA := filepath.Join(root, "siteA")
	siteB := filepath.Join(root, "siteB")
	for _, d := range []string{siteA, siteB} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	audiotest.WriteWAV(t, siteA, "s01.wav", 16000, audiotest.Voice(16000, 12000, 180, 0.5))
	audiotest.WriteWAV(t, siteA, "s02.wav", 16000, audiotest.Voice(16000, 12000, 200, 0.5))
	audiotest.WriteWAV(t, siteB, "s01.wav", 16000, audiotest.Voice(16000, 12000, 110, 0.5))

	out := t.TempDir()
	core, logs := observer.New(zapcore.InfoLevel)
	b := NewBuilder(out, WithWorkers(2), WithLogger(zap.New(core)))

	res, err := b.Build(context.Background(), Input{siteA, Control}, Input{siteB, Control})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	for _, r := range res.Records {
		if filepath.Dir(r.OriginalPath) != siteA {
			t.Errorf("record for %s, want only %s files", r.OriginalPath, siteA)
		}
	}

	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %d, want 1", len(res.Skipped))
	}
	s := res.Skipped[0]
	if s.Path != filepath.Join(siteB, "s01.wav") || !errors.Is(s.Err, ErrDuplicateOutput) {
		t.Errorf("skip = %s: %v, want %s: %v", s.Path, s.Err, filepath.Join(siteB, "s01.wav"), ErrDuplicateOutput)
	}

	warns := logs.FilterMessage("skipping file").All()
	if len(warns) != 1 {
		t.Fatalf("skip warnings = %d, want 1", len(warns))
	}
	if ctx := warns[0].ContextMap(); ctx["run_id"] != res.RunID || ctx["path"] != s.Path {
		t.Errorf("warning fields = %v", ctx)
	}
}

func TestBuilder_LogsIgnoredFiles(t *testing.T) {
	t.Parallel()

	_, pd := writeCorpus(t)
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBuilder(t.TempDir(), WithLogger(zap.New(core)))

	res, err := b.Build(context.Background(), Input{pd, Parkinsons})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 || len(res.Skipped) != 1 {
		t.Fatalf("records = %d, skipped = %d, want 2 and 1", len(res.Records), len(res.Skipped))
	}

	ignored := logs.FilterMessage("ignoring unsupported file").All()
	if len(ignored) != 1 {
		t.Fatalf("ignored entries = %d, want 1", len(ignored))
	}
	if e := ignored[0]; e.Level != zapcore.DebugLevel || e.ContextMap()["path"] != filepath.Join(pd, "notes.txt") {
		t.Errorf("ignored entry = %v %v", e.Level, e.ContextMap())
	}
}

func TestBuilder_AugmentedCopies(t *testing.T) {
	t.Parallel()

	control, pd := writeCorpus(t)

	build := func(cache Cache) *Result {
		t.Helper()

		out := t.TempDir()
		res, err := NewBuilder(out, WithAugmentedCopies(2), WithSeed(7), WithCache(cache)).
			Build(context.Background(), Input{control, Control}, Input{pd, Parkinsons})
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a := build(NopCache{})
	if len(a.Records) != 15 {
		t.Fatalf("records = %d, want 15", len(a.Records))
	}

	copies := make(map[string]int)
	for _, r := range a.Records {
		copies[r.OriginalPath]++
	}
	for src, n := range copies {
		if n != 3 {
			t.Errorf("%s has %d records, want 3", src, n)
		}
	}

	// A second run with the same seed renders identical pixels.
	bc, err := OpenBadgerCache("", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bc.Close()

	b := build(bc)
	for i := range a.Records {
		x, err := imaging.ReadPNG(a.Records[i].SpectrogramPath)
		if err != nil {
			t.Fatal(err)
		}
		y, err := imaging.ReadPNG(b.Records[i].SpectrogramPath)
		if err != nil {
			t.Fatal(err)
		}
		if !x.Equal(y) {
			t.Errorf("%s differs between runs", filepath.Base(a.Records[i].SpectrogramPath))
		}
	}
}

func TestBuilder_ReusesCachedImages(t *testing.T) {
	t.Parallel()

	control, _ := writeCorpus(t)
	out := t.TempDir()
	b := NewBuilder(out, WithWorkers(1))

	first, err := b.Build(context.Background(), Input{control, Control})
	if err != nil {
		t.Fatal(err)
	}

	// Replace one image; the file cache must hand it back untouched.
	marker := imaging.NewImage(2, 2)
	target := first.Records[0].SpectrogramPath
	if err := imaging.WritePNG(target, marker); err != nil {
		t.Fatal(err)
	}

	if _, err := b.Build(context.Background(), Input{control, Control}); err != nil {
		t.Fatal(err)
	}
	img, err := imaging.ReadPNG(target)
	if err != nil {
		t.Fatal(err)
	}
	if !img.Equal(marker) {
		t.Error("cached image was recomputed")
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	b := NewBuilder(t.TempDir())

	if _, err := b.Build(context.Background()); !errors.Is(err, ErrNoInputs) {
		t.Errorf("no inputs: error = %v", err)
	}

	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := b.Build(context.Background(), Input{missing, Control}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing dir: error = %v", err)
	}

	control, _ := writeCorpus(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Build(ctx, Input{control, Control}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: error = %v, want context.Canceled", err)
	}
}
