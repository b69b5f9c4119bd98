package main

import (
	"math"
	"sync"
)

// probeAudioStream turns the pressure at the sound scene's probe cell into a
// tone. The lattice runs in slow motion, so the stream synthesizes the source
// frequency in real time and only follows the probe's envelope.
type probeAudioStream struct {
	mu        sync.Mutex
	frequency float64
	envelope  float64

	// Only touched by the audio goroutine.
	phase float64
	gain  float64
}

func newProbeAudioStream() *probeAudioStream {
	return &probeAudioStream{}
}

// SetProbe feeds one probe value, called once per tick.
func (s *probeAudioStream) SetProbe(v, frequency float64) {
	const decay = 0.95
	s.mu.Lock()
	s.frequency = frequency
	s.envelope = math.Max(math.Abs(v), s.envelope*decay)
	s.mu.Unlock()
}

func (s *probeAudioStream) Read(p []byte) (int, error) {
	// Whole 16-bit stereo frames only.
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	freq := s.frequency
	target := math.Min(1, s.envelope*audioProbeGain)
	s.mu.Unlock()

	step := 2 * math.Pi * freq / audioSampleRate
	for i := 0; i < frameBytes; i += 4 {
		// One-pole smoothing avoids clicks when the envelope jumps.
		s.gain += 0.002 * (target - s.gain)
		v := int16(s.gain * math.Sin(s.phase) * pcm16MaxValue)
		s.phase += step
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *probeAudioStream) Close() error {
	return nil
}
