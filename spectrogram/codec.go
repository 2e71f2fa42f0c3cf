// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

// Stream layout, little endian:
//
//	magic   [4]byte "PDSM"
//	version uint8
//	rows    uint32
//	cols    uint32
//	values  rows*cols uint16, row major, IEEE 754 binary16
const (
	codecMagic   = "PDSM"
	codecVersion = 1
	maxDim       = 1 << 20
	maxValues    = 1 << 26
)

// Encode writes m in half precision. Values in dB survive with about
// three significant digits.
func Encode(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()

	bw := bufio.NewWriter(w)
	header := make([]byte, 0, 13)
	header = append(header, codecMagic...)
	header = append(header, codecVersion)
	header = binary.LittleEndian.AppendUint32(header, uint32(r))
	header = binary.LittleEndian.AppendUint32(header, uint32(c))
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("writing spectrogram header: %w", err)
	}

	var buf [2]byte
	for i := range r {
		for j := range c {
			binary.LittleEndian.PutUint16(buf[:], float16.Fromfloat32(float32(m.At(i, j))).Bits())
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("writing spectrogram values: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing spectrogram values: %w", err)
	}

	return nil
}

// Decode reads a matrix written by Encode.
func Decode(r io.Reader) (*mat.Dense, error) {
	br := bufio.NewReader(r)

	header := make([]byte, 13)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("reading spectrogram header: %w", err)
	}
	if string(header[:4]) != codecMagic {
		return nil, ErrBadMagic
	}
	if header[4] != codecVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header[4])
	}

	rows := int(binary.LittleEndian.Uint32(header[5:9]))
	cols := int(binary.LittleEndian.Uint32(header[9:13]))
	if rows > maxDim || cols > maxDim || rows*cols > maxValues || (rows == 0) != (cols == 0) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if rows == 0 {
		return &mat.Dense{}, nil
	}

	// Rows are read one at a time so a lying header only costs what the
	// stream actually delivers.
	raw := make([]byte, 2*cols)
	data := make([]float64, 0, min(rows*cols, 1<<16))
	for range rows {
		if _, err := io.ReadFull(br, raw); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("reading spectrogram values: %w", err)
		}
		for j := range cols {
			data = append(data, float64(float16.Frombits(binary.LittleEndian.Uint16(raw[2*j:])).Float32()))
		}
	}

	return mat.NewDense(rows, cols, data), nil
}

// WriteFile encodes m to path.
func WriteFile(path string, m mat.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return Encode(f, m)
}

// ReadFile decodes the matrix stored at path.
func ReadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
