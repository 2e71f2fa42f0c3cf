// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"sync"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/ik5/pdspec/audio"
)

// Extractor converts waveforms to mel spectrograms. It is safe for
// concurrent use.
type Extractor struct {
	cfg    Config
	window []float64
	mel    *mat.Dense

	ffts sync.Pool
}

func New(cfg Config) *Extractor {
	e := &Extractor{
		cfg:    cfg,
		window: PeriodicHann(cfg.NFFT),
		mel:    MelFilterbank(cfg.SampleRate, cfg.NFFT, cfg.NMels, cfg.FMin, cfg.FMax),
	}
	e.ffts.New = func() any { return fourier.NewFFT(cfg.NFFT) }

	return e
}

func (e *Extractor) Config() Config { return e.cfg }

// PeriodicHann returns the DFT-even Hann window of length n.
func PeriodicHann(n int) []float64 {
	return window.Hann(n + 1)[:n]
}

// PowerSpectrum returns |STFT|^2 as a bins x frames matrix. Frames are
// centered on multiples of the hop length with n_fft/2 zeros of padding on
// each side, so there is always at least one frame.
func (e *Extractor) PowerSpectrum(x []float64) *mat.Dense {
	nfft, hop := e.cfg.NFFT, e.cfg.HopLength
	bins := e.cfg.Bins()
	frames := e.cfg.Frames(len(x))

	padded := make([]float64, len(x)+nfft)
	copy(padded[nfft/2:], x)

	fft := e.ffts.Get().(*fourier.FFT)
	defer e.ffts.Put(fft)

	seq := make([]float64, nfft)
	coeff := make([]complex128, bins)
	out := mat.NewDense(bins, frames, nil)

	for f := range frames {
		frame := padded[f*hop : f*hop+nfft]
		for i, v := range frame {
			seq[i] = v * e.window[i]
		}

		coeff = fft.Coefficients(coeff, seq)
		for k, c := range coeff {
			out.Set(k, f, real(c)*real(c)+imag(c)*imag(c))
		}
	}

	return out
}

// MelPower projects the power spectrum of x onto the mel filterbank.
func (e *Extractor) MelPower(x []float64) *mat.Dense {
	spec := e.PowerSpectrum(x)

	var out mat.Dense
	out.Mul(e.mel, spec)

	return &out
}

// Extract returns the cropped log-power mel spectrogram of w. The waveform
// is assumed to be at the configured sample rate.
func (e *Extractor) Extract(w audio.Waveform) *mat.Dense {
	db := PowerToDB(e.MelPower(w.Samples), e.cfg.TopDB)
	return CropTrailing(db, e.cfg.CropRatio, e.cfg.CropPad)
}

// Filterbank exposes the mel weights (read only).
func (e *Extractor) Filterbank() mat.Matrix { return e.mel }
