package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// startProfiling starts a CPU profile when cpuPath is set. The returned stop
// function ends it and, when heapPath is set, writes a heap profile. Stop is
// safe to call more than once.
func startProfiling(cpuPath, heapPath string) (func(), error) {
	var cpu *os.File
	if cpuPath != "" {
		f, err := os.Create(cpuPath)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		cpu = f
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			if cpu != nil {
				pprof.StopCPUProfile()
				_ = cpu.Close()
			}
			if heapPath != "" {
				if err := writeHeapProfile(heapPath); err != nil {
					log.Printf("heap profile: %v", err)
				}
			}
		})
	}
	return stop, nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
