package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// loadLoopSamples decodes the WAV at path and returns stereo-averaged samples at sampleRate.
func loadLoopSamples(sampleRate int, path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	samples := decodeStereoI16ToFloat(decoded)
	if len(samples) == 0 {
		return nil, fmt.Errorf("wav %q has no usable samples", path)
	}
	normalize(samples)
	return samples, nil
}

func decodeStereoI16ToFloat(pcm []byte) []float32 {
	frameCount := len(pcm) / 4
	samples := make([]float32, frameCount)
	for i := range samples {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(pcm[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[offset+2 : offset+4]))
		samples[i] = (float32(left) + float32(right)) * (0.5 / 32768.0)
	}
	return samples
}

// normalize scales samples to a peak of 1 so the loop drives the lattice like
// the sine oscillator does.
func normalize(samples []float32) {
	var peak float32
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	if peak == 0 {
		return
	}
	for i := range samples {
		samples[i] /= peak
	}
}

// loopWaveform plays a sample loop as a point-source waveform. One oscillator
// cycle advances the loop by 1/pitch seconds, so the loop sounds at its
// recorded speed when the source runs at pitch Hz. Phase and frequency changes
// keep the loop position continuous, like the sine oscillator.
type loopWaveform struct {
	samples    []float32
	sampleRate float64
	pitch      float64
}

func newLoopWaveform(samples []float32, sampleRate int, pitch float64) *loopWaveform {
	return &loopWaveform{samples: samples, sampleRate: float64(sampleRate), pitch: pitch}
}

func (w *loopWaveform) Sample(t, frequency, phase float64) float64 {
	cycles := frequency*t + phase/(2*math.Pi)
	n := len(w.samples)
	idx := int(math.Floor(cycles/w.pitch*w.sampleRate)) % n
	if idx < 0 {
		idx += n
	}
	return float64(w.samples[idx])
}
