package main

import "time"

// Viewer configuration constants. The physics constants of each medium live in
// the scene presets.
const (
	windowScale         = 4
	tickRate            = 60.0
	maxTicksPerUpdate   = 4
	amplitudeStep       = 0.1
	frequencySteps      = 20
	separationStepCells = 2
	intensityWindow     = 120
	intensityGraphWidth = 40
	sourceMarkerRadius  = 2
	audioSampleRate     = 48000
	audioBufferDuration = 80 * time.Millisecond
	audioProbeGain      = 0.5
	loopPitch           = 440.0
	pcm16MaxValue       = 32767
	recordJPEGQuality   = 90
	chartWidth          = 1024
	chartHeight         = 512
)
