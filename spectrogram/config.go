// SPDX-License-Identifier: EPL-2.0

package spectrogram

type Config struct {
	SampleRate int
	NFFT       int
	HopLength  int
	NMels      int
	FMin       float64
	FMax       float64 // 0 means Nyquist

	// TopDB floors the decibel scale below the peak.
	TopDB float64

	// Trailing frames whose energy is below CropRatio of the loudest frame
	// are dropped, keeping CropPad frames after the last loud one.
	CropRatio float64
	CropPad   int
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 16000,
		NFFT:       1024,
		HopLength:  160,
		NMels:      128,
		TopDB:      80,
		CropRatio:  0.01,
		CropPad:    5,
	}
}

// Bins is the number of non-negative frequency bins of one FFT frame.
func (c Config) Bins() int { return c.NFFT/2 + 1 }

// Frames is the number of STFT frames for n samples.
func (c Config) Frames(n int) int { return 1 + max(0, n)/c.HopLength }
