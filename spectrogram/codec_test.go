// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/internal/audiotest"
)

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	m := e.Extract(audio.Waveform{Samples: audiotest.Voice(16000, 16000, 180, 0.7), SampleRate: 16000})

	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	r, c := m.Dims()
	if buf.Len() != 13+2*r*c {
		t.Errorf("encoded size = %d, want %d", buf.Len(), 13+2*r*c)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if gr, gc := got.Dims(); gr != r || gc != c {
		t.Fatalf("Dims() = %dx%d, want %dx%d", gr, gc, r, c)
	}

	// binary16 keeps 11 significant bits: 0.0625 absolute at |x| in [64, 128).
	if !mat.EqualApprox(got, m, 0.0625) {
		t.Error("decoded matrix differs by more than half-precision rounding")
	}
	if mat.Max(got) != 0 {
		t.Errorf("Max() = %v, want 0 to survive exactly", mat.Max(got))
	}
}

func TestCodec_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, &mat.Dense{}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !got.IsEmpty() {
		t.Error("decoded matrix is not empty")
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	var good bytes.Buffer
	if err := Encode(&good, mat.NewDense(2, 3, []float64{0, -1, -2, -3, -4, -5})); err != nil {
		t.Fatal(err)
	}
	valid := good.Bytes()

	badVersion := bytes.Clone(valid)
	badVersion[4] = 9

	badShape := bytes.Clone(valid)
	badShape[5], badShape[6], badShape[7], badShape[8] = 0, 0, 0, 0

	tests := []struct {
		name    string
		in      []byte
		wantErr error
	}{
		{"short header", valid[:7], io.ErrUnexpectedEOF},
		{"magic", append([]byte("NOPE"), valid[4:]...), ErrBadMagic},
		{"version", badVersion, ErrUnsupportedVersion},
		{"shape", badShape, ErrInvalidShape},
		{"truncated values", valid[:len(valid)-1], io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode(bytes.NewReader(tt.in)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_HugeShape(t *testing.T) {
	t.Parallel()

	stream := func(rows, cols uint32) []byte {
		b := append([]byte(codecMagic), codecVersion)
		b = binary.LittleEndian.AppendUint32(b, rows)
		b = binary.LittleEndian.AppendUint32(b, cols)
		return append(b, 0, 0, 0)
	}

	tests := []struct {
		name       string
		rows, cols uint32
		wantErr    error
	}{
		{"both at limit", maxDim, maxDim, ErrInvalidShape},
		{"product over limit", maxDim, 1 << 10, ErrInvalidShape},
		{"rows over limit", maxDim + 1, 1, ErrInvalidShape},
		{"overflowing uint32", math.MaxUint32, math.MaxUint32, ErrInvalidShape},
		{"allowed but truncated", 128, 1 << 18, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(bytes.NewReader(stream(tt.rows, tt.cols)))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Decode() = %v, want nil", got)
			}
		})
	}
}

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "m.spec")
	m := mat.NewDense(2, 2, []float64{0, -0.5, -80, -12.25})
	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for i := range 2 {
		for j := range 2 {
			if math.Abs(got.At(i, j)-m.At(i, j)) > 1e-9 {
				t.Errorf("At(%d, %d) = %v, want %v", i, j, got.At(i, j), m.At(i, j))
			}
		}
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadFile(missing) succeeded")
	}
}
