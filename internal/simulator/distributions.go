// Package simulator holds the Monte Carlo engine: distribution samplers,
// per-game and per-player outcome projection, and the orchestrator that runs
// trials and aggregates win probabilities.
package simulator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// minYardsStd keeps zero-event yardage draws well-defined: a near-zero sigma
// makes the draw effectively deterministic at its (near-zero) mean.
const minYardsStd = 0.01

// Sampler draws from a single shared random stream. All simulators in one
// run share a Sampler, so a fixed seed plus a fixed draw order reproduces a
// run exactly.
type Sampler struct {
	src rand.Source
}

// NewSampler creates a sampler seeded once for the run.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{src: rand.NewSource(seed)}
}

// SamplePoisson draws n non-negative integer counts with mean lambda.
// A non-positive lambda is a legitimate degenerate case (a category the
// player is projected to never attempt) and yields n zeros, not an error.
func (s *Sampler) SamplePoisson(lambda float64, n int) []float64 {
	out := make([]float64, n)
	if lambda <= 0 {
		return out
	}
	dist := distuv.Poisson{Lambda: lambda, Src: s.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// SampleNormal draws n values from N(mean, std). A non-positive std clamps
// to a degenerate distribution at the mean.
func (s *Sampler) SampleNormal(mean, std float64, n int) []float64 {
	out := make([]float64, n)
	if std <= 0 {
		for i := range out {
			out[i] = mean
		}
		return out
	}
	dist := distuv.Normal{Mu: mean, Sigma: std, Src: s.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// SampleNormalMin is SampleNormal with a one-sided clip: draws below min are
// floored to it, not resampled.
func (s *Sampler) SampleNormalMin(mean, std float64, n int, min float64) []float64 {
	out := s.SampleNormal(mean, std, n)
	for i := range out {
		if out[i] < min {
			out[i] = min
		}
	}
	return out
}

// SampleYardsGivenEvents approximates, per trial, the sum of events[i]
// independent per-event yardage draws as a single Normal draw with
//
//	mean  = events[i] * yardsPerEvent
//	sigma = stdPerEvent * sqrt(max(events[i], 0))
//
// sigma is floored at a small epsilon so zero-event trials still have a
// well-defined near-deterministic draw, and results are clamped at minYards.
// The Gaussian stands in for the true discrete convolution; with thousands
// of trials the limiting normal form is indistinguishable from it.
func (s *Sampler) SampleYardsGivenEvents(events []float64, yardsPerEvent, stdPerEvent, minYards float64) []float64 {
	out := make([]float64, len(events))
	for i, ev := range events {
		mean := ev * yardsPerEvent
		sigma := stdPerEvent * math.Sqrt(math.Max(ev, 0))
		if sigma < minYardsStd {
			sigma = minYardsStd
		}
		draw := distuv.Normal{Mu: mean, Sigma: sigma, Src: s.src}.Rand()
		out[i] = math.Max(minYards, draw)
	}
	return out
}
