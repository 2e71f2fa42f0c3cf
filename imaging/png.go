// SPDX-License-Identifier: EPL-2.0

package imaging

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

var encoder = png.Encoder{CompressionLevel: png.BestCompression}

func EncodePNG(w io.Writer, img *Image) error {
	if err := encoder.Encode(w, img.ToNRGBA()); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}

	return nil
}

func DecodePNG(r io.Reader) (*Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}

	return FromImage(img), nil
}

// PNGBytes returns the PNG encoding of img.
func PNGBytes(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WritePNG stores img at path, creating parent directories. The file is
// written under a temporary name and renamed so readers never see a
// partial image.
func WritePNG(path string, img *Image) error {
	data, err := PNGBytes(img)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".png-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}

	return nil
}

func ReadPNG(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return DecodePNG(f)
}
