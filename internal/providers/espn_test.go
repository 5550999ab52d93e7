package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

func TestClockSeconds(t *testing.T) {
	assert.Equal(t, models.GameSeconds, clockSeconds(0, "15:00", "pre"))
	assert.Equal(t, 0, clockSeconds(4, "0:00", "post"))

	// Q1 with 10:30 on the clock: three full quarters plus 630s
	assert.Equal(t, 3*900+630, clockSeconds(1, "10:30", "in"))
	// Q4 two-minute warning
	assert.Equal(t, 120, clockSeconds(4, "2:00", "in"))
	// Overtime periods clamp the quarters-left term at zero
	assert.Equal(t, 300, clockSeconds(5, "5:00", "in"))
	// Junk clock falls back to quarter boundaries
	assert.Equal(t, 900, clockSeconds(3, "??", "in"))
}

func TestNormalizeESPNTeam(t *testing.T) {
	assert.Equal(t, "JAX", NormalizeESPNTeam("JAC"))
	assert.Equal(t, "WAS", NormalizeESPNTeam("WSH"))
	assert.Equal(t, "LAR", NormalizeESPNTeam("LA"))
	assert.Equal(t, "SF", NormalizeESPNTeam("SF"))
}

func TestLiveGameID(t *testing.T) {
	game := LiveGame{AwayTeam: "LA", HomeTeam: "CAR"}
	assert.Equal(t, "LAR @ CAR", game.GameID())
}

func TestLiveGameQuarter(t *testing.T) {
	assert.Equal(t, models.QuarterFinal, LiveGame{State: "post", Period: 4}.Quarter())
	assert.Equal(t, 3, LiveGame{State: "in", Period: 3}.Quarter())
	assert.Equal(t, models.QuarterNotStarted, LiveGame{State: "pre"}.Quarter())
}

func TestApplyStatGroup(t *testing.T) {
	var line models.PlayerStats

	applyStatGroup(&line, "passing",
		map[string]int{"C/ATT": 0, "YDS": 1, "TD": 3, "INT": 4},
		[]string{"22/31", "264", "8.5", "2", "1"})
	assert.InDelta(t, 264.0, line.PassYds, 1e-9)
	assert.Equal(t, 2, line.PassTDs)
	assert.Equal(t, 1, line.Ints)

	applyStatGroup(&line, "rushing",
		map[string]int{"CAR": 0, "YDS": 1, "TD": 3},
		[]string{"6", "38", "6.3", "1"})
	assert.InDelta(t, 38.0, line.RushYds, 1e-9)
	assert.Equal(t, 1, line.RushTDs)

	applyStatGroup(&line, "receiving",
		map[string]int{"REC": 0, "YDS": 1, "TD": 3},
		[]string{"7", "102", "14.6", "1"})
	assert.Equal(t, 7, line.Rec)
	assert.InDelta(t, 102.0, line.RecYds, 1e-9)
	assert.Equal(t, 1, line.RecTDs)

	applyStatGroup(&line, "fumbles",
		map[string]int{"FUM": 0, "LOST": 1},
		[]string{"1", "1"})
	assert.Equal(t, 1, line.FumblesLost)

	// Labels beyond the value list are ignored rather than panicking
	applyStatGroup(&line, "passing",
		map[string]int{"YDS": 5},
		[]string{"22/31"})
	assert.InDelta(t, 264.0, line.PassYds, 1e-9)

	// Unknown groups are a no-op
	before := line
	applyStatGroup(&line, "kicking", map[string]int{"FG": 0}, []string{"2/2"})
	assert.Equal(t, before, line)
}
