package reel

import (
	"context"
	"math"
)

// ExportState is the progress state reported by a video export backend.
type ExportState uint8

const (
	ExportIdle ExportState = iota
	ExportPreparing
	ExportRecording
	ExportProcessing
	ExportComplete
	ExportError
)

func (s ExportState) String() string {
	switch s {
	case ExportIdle:
		return "idle"
	case ExportPreparing:
		return "preparing"
	case ExportRecording:
		return "recording"
	case ExportProcessing:
		return "processing"
	case ExportComplete:
		return "complete"
	case ExportError:
		return "error"
	}
	return "unknown"
}

// ExportProgress is one report from an Exporter.
type ExportProgress struct {
	State ExportState
	// Fraction of frames recorded, in [0, 1].
	Fraction float64
	Err      error
}

// Exporter records a project to video. The engine supplies the duration and
// the per-frame snapshots; the backend owns encoding.
type Exporter interface {
	Export(ctx context.Context, p *Project, progress func(ExportProgress)) error
}

// FrameTimes returns the timestamps of every frame when p is sampled at its
// FPS: 0, 1/fps, ... up to but excluding the total duration.
func FrameTimes(p *Project) []float64 {
	total := p.TotalDuration()
	if p.FPS <= 0 || total <= 0 {
		return nil
	}
	n := int(math.Ceil(total*p.FPS - 1e-9))
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / p.FPS
	}
	return times
}
