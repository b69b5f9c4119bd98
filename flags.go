package main

import "flag"

// Command-line flags of the viewer.
var (
	// sceneFlag picks one of the built-in presets.
	sceneFlag = flag.String("scene", "water", "scene preset: light, sound or water")

	// sceneFileFlag loads a JSON scene (preset plus overrides) instead of -scene.
	sceneFileFlag = flag.String("scene-file", "", "JSON scene file overriding -scene")

	// boundaryFlag overrides the scene's edge treatment when set.
	boundaryFlag = flag.String("boundary", "", "lattice edge treatment: absorbing or reflecting (default: scene's)")

	twoSourcesFlag = flag.Bool("two-sources", false, "start with two point sources")

	// enableAudioFlag plays the pressure at the probe cell of the sound scene.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the sound scene's probe cell")

	// sourceWAVFlag drives the point sources from a looping WAV file.
	sourceWAVFlag = flag.String("source-wav", "", "WAV loop used as point-source waveform")

	recordFlag = flag.String("record", "", "write rendered frames to this MJPEG AVI file")

	// intensityChartFlag writes the screen intensity profile on exit.
	intensityChartFlag = flag.String("intensity-chart", "", "write the intensity profile PNG here on exit")

	cpuProfileFlag  = flag.String("cpuprofile", "", "write a CPU profile to this file")
	heapProfileFlag = flag.String("memprofile", "", "write a heap profile to this file on exit")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")
)
