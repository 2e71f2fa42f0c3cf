// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the loader is built on.
//
//   - Source: a pull-based stream of interleaved float32 samples in [-1, 1]
//   - Decoder and Registry: pick a format decoder from a file extension
//   - MonoMixer: average all channels into one
//   - Resampler: Catmull-Rom sample rate conversion
//   - SliceSource: a Source over samples already in memory
//   - Waveform: a whole mono signal as float64, the unit the rest of the
//     pipeline works on
//
// # Reading a file
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.Lookup("voice.wav")
//	src, err := dec.Decode(file)
//	w, err := audio.ReadWaveform(src, 16000)
//
// ReadWaveform downmixes before resampling so the interpolation runs on a
// single channel.
//
// # End of stream
//
// ReadSamples returns io.EOF together with the final samples or on the call
// after them. Callers must consume n before looking at err:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
