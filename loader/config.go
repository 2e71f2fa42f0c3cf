// SPDX-License-Identifier: EPL-2.0

package loader

const (
	DefaultSampleRate = 16000
	// DefaultClipSamples is the nominal 3 s clip length. It is not enforced.
	DefaultClipSamples = 3 * DefaultSampleRate
)

type Config struct {
	SampleRate int

	// Silence trim over centered frames.
	TopDB           float64
	TrimFrameLength int
	TrimHopLength   int

	// Active region over RMS frames.
	FrameLength int
	HopLength   int
	ActiveRatio float64

	// PeakFloor is the peak below which normalization is skipped.
	PeakFloor float64
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      DefaultSampleRate,
		TopDB:           35,
		TrimFrameLength: 2048,
		TrimHopLength:   512,
		FrameLength:     1024,
		HopLength:       512,
		ActiveRatio:     0.03,
		PeakFloor:       1e-12,
	}
}
