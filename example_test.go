// SPDX-License-Identifier: EPL-2.0

package pdspec_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/ik5/pdspec"
	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/internal/audiotest"
)

// ExamplePipeline_Render formats one second of a synthetic voice.
func ExamplePipeline_Render() {
	p := pdspec.New()
	w := audio.Waveform{Samples: audiotest.Voice(16000, 16000, 150, 0.5), SampleRate: 16000}

	img := p.Render(w)
	fmt.Printf("%dx%d, %d bytes\n", img.Width, img.Height, len(img.Pix))
	// Output: 224x224, 150528 bytes
}

// ExamplePipeline_RenderAugmented shows that a seeded generator makes
// augmentation reproducible.
func ExamplePipeline_RenderAugmented() {
	p := pdspec.New()
	w := audio.Waveform{Samples: audiotest.Voice(16000, 16000, 150, 0.5), SampleRate: 16000}

	a := p.RenderAugmented(w, rand.New(rand.NewPCG(42, 1)))
	b := p.RenderAugmented(w, rand.New(rand.NewPCG(42, 1)))
	fmt.Println(a.Equal(b))
	// Output: true
}
