package grids

import (
	"fmt"
	"math"
)

// ModelParams are the grid-related options of a lattice model constructor.
type ModelParams struct {
	Sites int     // number of lattice sites
	Size  float64 // length of the lattice
	A     float64 // lattice spacing, ignored when Sites and Size are given
	BC    string  // boundary conditions, "open" (default) or "periodic"
}

// FromModel builds the grid whose points are the sites of a lattice model,
// and normalizes the parameters in place so that Sites, Size and A agree
// with the constructed grid.
func FromModel(p *ModelParams) (Grid1D, error) {
	var extent []float64
	if p.Size != 0.0 {
		extent = []float64{p.Size}
	}
	g, err := New(Spec{
		N:        p.Sites,
		Extent:   extent,
		Step:     p.A,
		Periodic: p.BC != "" && p.BC != "open",
	})
	if err != nil {
		return Grid1D{}, err
	}
	p.Sites, p.Size, p.A = g.N, g.Size(), g.Step
	return g, nil
}

// EvoParams are the sampling options of a time-evolution algorithm.
type EvoParams struct {
	Steps      int     // evolution steps per sample
	Dt         float64 // duration of one step
	StartTime  float64 // current time
	TargetTime float64 // final time
}

// FromEvolution builds the grid whose points are the timestamps of the
// evolution samples, spanning from time zero to the current time, or with
// target to the target time. The current time must be a whole number of
// samples; the target time is rounded up to one.
func FromEvolution(p EvoParams, target bool) (Grid1D, error) {
	dtSample := float64(p.Steps) * p.Dt
	if dtSample <= 0.0 {
		return Grid1D{}, fmt.Errorf("grids: sample duration must be positive, got %d steps of %g", p.Steps, p.Dt)
	}
	var n int
	if target {
		n = int(math.Ceil(p.TargetTime / dtSample))
	} else {
		var err error
		if n, err = asInt(p.StartTime / dtSample); err != nil {
			return Grid1D{}, fmt.Errorf("grids: current time %g is not a whole number of samples of %g", p.StartTime, dtSample)
		}
	}
	g, err := New(Spec{N: n, Step: dtSample})
	if err != nil {
		return Grid1D{}, err
	}
	return g.Dual(true), nil
}
