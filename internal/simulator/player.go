package simulator

import (
	"github.com/ianmccall/wildcard-sim/internal/models"
	"github.com/ianmccall/wildcard-sim/internal/scoring"
)

// Default per-event yardage standard deviations. Tunable from historical
// play-by-play data; these are reasonable league-wide values.
const (
	YardsPerCarryStd      = 5.0
	YardsPerReceptionStd  = 8.0
	YardsPerCompletionStd = 6.0
)

// PlayerSimulator projects a player's remaining statistical production and
// converts it to fantasy points.
type PlayerSimulator struct {
	ypcStd    float64
	yprStd    float64
	ypCompStd float64
	sampler   *Sampler
}

// NewPlayerSimulator creates a player simulator drawing from the given
// shared sampler.
func NewPlayerSimulator(sampler *Sampler) *PlayerSimulator {
	return &PlayerSimulator{
		ypcStd:    YardsPerCarryStd,
		yprStd:    YardsPerReceptionStd,
		ypCompStd: YardsPerCompletionStd,
		sampler:   sampler,
	}
}

// SimulateRemaining returns a length-n array of fantasy point totals for the
// player: accumulated stats so far plus a simulated remainder scaled to the
// fraction of the game left. With nothing remaining the result is the
// deterministic score of the accumulated stats, replicated n times, and no
// randomness is consumed.
func (p *PlayerSimulator) SimulateRemaining(proj models.PlayerProjection, current models.PlayerStats, fractionRemaining float64, n int) []float64 {
	if fractionRemaining <= 0 {
		points := make([]float64, n)
		final := scoring.PlayerPoints(current, proj.Position)
		for i := range points {
			points[i] = final
		}
		return points
	}

	scaled := proj.Scale(fractionRemaining)
	if proj.Position == models.PositionQB {
		return p.simulateQB(scaled, current, n)
	}
	return p.simulateSkill(scaled, current, n)
}

// simulateQB draws the discrete event counts from Poisson, yardage totals
// keyed on those counts, and scores each trial with the QB formula.
func (p *PlayerSimulator) simulateQB(scaled models.PlayerProjection, current models.PlayerStats, n int) []float64 {
	completions := p.sampler.SamplePoisson(scaled.PassCmp, n)
	passTDs := p.sampler.SamplePoisson(scaled.PassTDs, n)
	ints := p.sampler.SamplePoisson(scaled.Ints, n)
	rushAtt := p.sampler.SamplePoisson(scaled.RushAtt, n)
	rushTDs := p.sampler.SamplePoisson(scaled.RushTDs, n)
	fumbles := p.sampler.SamplePoisson(scaled.FumblesLost, n)

	passYds := p.sampler.SampleYardsGivenEvents(completions, scaled.YardsPerCompletion(), p.ypCompStd, 0)
	rushYds := p.sampler.SampleYardsGivenEvents(rushAtt, scaled.YardsPerRush(), p.ypcStd, 0)

	points := make([]float64, n)
	for i := 0; i < n; i++ {
		totalPassYds := current.PassYds + passYds[i]
		totalPassTDs := float64(current.PassTDs) + passTDs[i]
		totalRushYds := current.RushYds + rushYds[i]
		totalRushTDs := float64(current.RushTDs) + rushTDs[i]
		turnovers := float64(current.Ints+current.FumblesLost) + ints[i] + fumbles[i]

		points[i] = totalPassYds/scoring.QBPassYardsPerPoint +
			totalPassTDs*scoring.QBPassTDPoints +
			totalRushYds/scoring.QBRushYardsPerPoint +
			totalRushTDs*scoring.QBRushTDPoints +
			turnovers*scoring.TurnoverPoints
	}
	return points
}

// simulateSkill is the RB/WR/TE equivalent: half-PPR, combined yardage, and
// combined touchdowns.
func (p *PlayerSimulator) simulateSkill(scaled models.PlayerProjection, current models.PlayerStats, n int) []float64 {
	receptions := p.sampler.SamplePoisson(scaled.Rec, n)
	recTDs := p.sampler.SamplePoisson(scaled.RecTDs, n)
	rushAtt := p.sampler.SamplePoisson(scaled.RushAtt, n)
	rushTDs := p.sampler.SamplePoisson(scaled.RushTDs, n)
	fumbles := p.sampler.SamplePoisson(scaled.FumblesLost, n)

	recYds := p.sampler.SampleYardsGivenEvents(receptions, scaled.YardsPerReception(), p.yprStd, 0)
	rushYds := p.sampler.SampleYardsGivenEvents(rushAtt, scaled.YardsPerRush(), p.ypcStd, 0)

	points := make([]float64, n)
	for i := 0; i < n; i++ {
		totalRec := float64(current.Rec) + receptions[i]
		totalYards := current.RushYds + current.RecYds + rushYds[i] + recYds[i]
		totalTDs := float64(current.RushTDs+current.RecTDs) + rushTDs[i] + recTDs[i]
		totalFumbles := float64(current.FumblesLost) + fumbles[i]

		points[i] = totalRec*scoring.PointsPerReception +
			totalYards/scoring.SkillYardsPerPoint +
			totalTDs*scoring.SkillTDPoints +
			totalFumbles*scoring.TurnoverPoints
	}
	return points
}
