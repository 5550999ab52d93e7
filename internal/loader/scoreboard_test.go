package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

func TestParsePlayerLine(t *testing.T) {
	name, pos, team, err := ParsePlayerLine("Josh Allen, QB, BUF")
	require.NoError(t, err)
	assert.Equal(t, "Josh Allen", name)
	assert.Equal(t, models.PositionQB, pos)
	assert.Equal(t, "BUF", team)

	// Team aliases normalize
	_, _, team, err = ParsePlayerLine("Brian Thomas Jr., WR, JAC")
	require.NoError(t, err)
	assert.Equal(t, "JAX", team)

	_, _, _, err = ParsePlayerLine("Josh Allen QB BUF")
	assert.Error(t, err)

	_, _, _, err = ParsePlayerLine("Some Kicker, K, BUF")
	assert.Error(t, err)
}

func TestParseBetLine(t *testing.T) {
	bet, err := ParseBetLine("GB @ CHI: u45.5", 2)
	require.NoError(t, err)
	assert.Equal(t, models.Bet{GameID: "GB @ CHI", Type: models.BetUnder, Line: 45.5, DraftRound: 2}, bet)

	bet, err = ParseBetLine("BUF @ JAX: o51.5", 1)
	require.NoError(t, err)
	assert.Equal(t, models.BetOver, bet.Type)
	assert.Equal(t, 51.5, bet.Line)

	bet, err = ParseBetLine("SF @ PHI: SF +4.5", 3)
	require.NoError(t, err)
	assert.Equal(t, models.BetSpread, bet.Type)
	assert.Equal(t, "SF", bet.Team)
	assert.Equal(t, 4.5, bet.Line)

	bet, err = ParseBetLine("SF @ PHI: PHI -4.5", 3)
	require.NoError(t, err)
	assert.Equal(t, -4.5, bet.Line)

	_, err = ParseBetLine("no colon here", 1)
	assert.Error(t, err)

	_, err = ParseBetLine("SF @ PHI: ???", 1)
	assert.Error(t, err)
}

const scoreboardFixture = `Standings
Ian	0.00
Kevin	0.00

Ian	0.00
Josh Allen, QB, BUF
Saquon Barkley, RB, PHI
Justin Jefferson, WR, MIN
George Kittle, TE, SF
Nico Collins, WR, HOU
SF @ PHI: SF +4.5
GB @ CHI: u45.5
BUF @ JAX: o51.5

Kevin	0.00
Jordan Love, QB, GB
Bijan Robinson, RB, ATL
CeeDee Lamb, WR, DAL
Sam LaPorta, TE, DET
James Cook, RB, BUF
HOU @ PIT: PIT +3
LAC @ NE: o46.5
LAR @ CAR: LAR -10.5
`

func TestParseScoreboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoreboard.txt")
	require.NoError(t, os.WriteFile(path, []byte(scoreboardFixture), 0o644))

	rounds := map[DraftKey]int{
		{Owner: "Ian", Pick: "GB @ CHI: u45.5"}:     2,
		{Owner: "Kevin", Pick: "HOU @ PIT: PIT +3"}: 1,
	}

	teams, err := ParseScoreboard(path, rounds)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	ian := teams[0]
	assert.Equal(t, "Ian", ian.Owner)
	assert.Equal(t, "Josh Allen", ian.QB)
	assert.Equal(t, "Saquon Barkley", ian.RB)
	assert.Equal(t, "Justin Jefferson", ian.WR)
	assert.Equal(t, "George Kittle", ian.TE)
	assert.Equal(t, "Nico Collins", ian.Flex)

	require.Len(t, ian.Bets, 3)
	assert.Equal(t, models.BetSpread, ian.Bets[0].Type)
	// Draft round found for the under, default for the others
	assert.Equal(t, models.MaxDraftRound, ian.Bets[0].DraftRound)
	assert.Equal(t, 2, ian.Bets[1].DraftRound)

	kevin := teams[1]
	assert.Equal(t, "Kevin", kevin.Owner)
	// Second RB lands in flex
	assert.Equal(t, "Bijan Robinson", kevin.RB)
	assert.Equal(t, "James Cook", kevin.Flex)
	require.Len(t, kevin.Bets, 3)
	assert.Equal(t, 1, kevin.Bets[0].DraftRound)
	assert.Equal(t, "PIT", kevin.Bets[0].Team)
}

func TestParseScoreboardMissingFile(t *testing.T) {
	_, err := ParseScoreboard(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

const draftFixture = "Draft on 1/7/26      at 8:30pm CST\tIan\tKevin\n" +
	"Round 1\tJosh Allen\tHOU @ PIT: PIT +3\n" +
	"Round 2\tGB @ CHI: u45.5\tJordan Love\n" +
	"Round 3\t\tBijan Robinson\n"

func TestParseDraftRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte(draftFixture), 0o644))

	rounds, err := ParseDraftRounds(path)
	require.NoError(t, err)

	assert.Equal(t, 1, rounds[DraftKey{Owner: "Ian", Pick: "Josh Allen"}])
	assert.Equal(t, 1, rounds[DraftKey{Owner: "Kevin", Pick: "HOU @ PIT: PIT +3"}])
	assert.Equal(t, 2, rounds[DraftKey{Owner: "Ian", Pick: "GB @ CHI: u45.5"}])
	assert.Equal(t, 3, rounds[DraftKey{Owner: "Kevin", Pick: "Bijan Robinson"}])

	// Empty cells produce no entry
	_, ok := rounds[DraftKey{Owner: "Ian", Pick: ""}]
	assert.False(t, ok)
}
