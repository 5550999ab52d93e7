package loader

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

var (
	ownerLineRe  = regexp.MustCompile(`^[A-Za-z]+\s*\d*\.?\d*$`)
	spreadBetRe  = regexp.MustCompile(`^([A-Z]+)\s*([+-]?\d+\.?\d*)`)
	linePrefixRe = regexp.MustCompile(`^\s*\d+→`)
)

// ParsePlayerLine parses a roster line like "Josh Allen, QB, BUF" and returns
// the player's name, position, and team.
func ParsePlayerLine(line string) (string, models.Position, string, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid player line: %q", line)
	}
	name := strings.TrimSpace(parts[0])
	pos, err := models.ParsePosition(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", "", fmt.Errorf("player line %q: %w", line, err)
	}
	team := NormalizeTeam(strings.TrimSpace(parts[2]))
	return name, pos, team, nil
}

// ParseBetLine parses a bet line like "SF @ PHI: SF +4.5" or "GB @ CHI: u45.5"
// into a Bet with the given draft round.
func ParseBetLine(line string, draftRound int) (models.Bet, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return models.Bet{}, fmt.Errorf("invalid bet line: %q", line)
	}
	gameID := strings.TrimSpace(parts[0])
	betStr := strings.TrimSpace(parts[1])
	if betStr == "" {
		return models.Bet{}, fmt.Errorf("invalid bet line: %q", line)
	}

	switch {
	case betStr[0] == 'o' || betStr[0] == 'O':
		line, err := strconv.ParseFloat(strings.TrimSpace(betStr[1:]), 64)
		if err != nil {
			return models.Bet{}, fmt.Errorf("invalid over line: %q", betStr)
		}
		return models.Bet{GameID: gameID, Type: models.BetOver, Line: line, DraftRound: draftRound}, nil
	case betStr[0] == 'u' || betStr[0] == 'U':
		line, err := strconv.ParseFloat(strings.TrimSpace(betStr[1:]), 64)
		if err != nil {
			return models.Bet{}, fmt.Errorf("invalid under line: %q", betStr)
		}
		return models.Bet{GameID: gameID, Type: models.BetUnder, Line: line, DraftRound: draftRound}, nil
	default:
		m := spreadBetRe.FindStringSubmatch(betStr)
		if m == nil {
			return models.Bet{}, fmt.Errorf("invalid spread bet: %q", betStr)
		}
		line, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return models.Bet{}, fmt.Errorf("invalid spread line: %q", betStr)
		}
		return models.Bet{
			GameID:     gameID,
			Type:       models.BetSpread,
			Line:       line,
			Team:       NormalizeTeam(m[1]),
			DraftRound: draftRound,
		}, nil
	}
}

// ParseScoreboard reads the scoreboard sheet and returns one FantasyTeam per
// owner block. Each block is an owner line followed by five player lines and
// three bet lines. draftRounds, keyed by (owner, pick string), supplies the
// round for each bet; picks not found default to the last round.
func ParseScoreboard(path string, draftRounds map[DraftKey]int) ([]models.FantasyTeam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	lines := cleanLines(data)

	var teams []models.FantasyTeam
	i := 0
	for i < len(lines) && !isOwnerLine(lines[i]) {
		i++
	}
	for i < len(lines) {
		if !isOwnerLine(lines[i]) {
			i++
			continue
		}

		owner := strings.TrimSpace(strings.Split(lines[i], "\t")[0])
		owner = strings.TrimSpace(strings.TrimSuffix(owner, "0.00"))
		i++

		team := models.FantasyTeam{Owner: owner}
		var slots []struct {
			name string
			pos  models.Position
		}
		for i < len(lines) {
			line := lines[i]
			if isOwnerLine(line) {
				break
			}
			switch {
			case line == "":
			case strings.Contains(line, "@") && strings.Contains(line, ":"):
				bet, err := ParseBetLine(line, models.MaxDraftRound)
				if err == nil {
					// The draft sheet stores bets in canonical form,
					// which may not match the scoreboard's spelling.
					if r, ok := draftRounds[DraftKey{Owner: owner, Pick: bet.String()}]; ok {
						bet.DraftRound = r
					} else if r, ok := draftRounds[DraftKey{Owner: owner, Pick: line}]; ok {
						bet.DraftRound = r
					}
					team.Bets = append(team.Bets, bet)
				}
			case strings.Contains(line, ","):
				name, pos, _, err := ParsePlayerLine(line)
				if err == nil {
					slots = append(slots, struct {
						name string
						pos  models.Position
					}{name, pos})
				}
			}
			i++
		}

		// Header and summary rows also look like owner lines; a block
		// with no players and no bets is not a team.
		if len(slots) == 0 && len(team.Bets) == 0 {
			continue
		}

		// First player at each position takes the named slot, everyone
		// else lands in flex.
		for _, s := range slots {
			switch {
			case s.pos == models.PositionQB && team.QB == "":
				team.QB = s.name
			case s.pos == models.PositionRB && team.RB == "":
				team.RB = s.name
			case s.pos == models.PositionWR && team.WR == "":
				team.WR = s.name
			case s.pos == models.PositionTE && team.TE == "":
				team.TE = s.name
			case team.Flex == "":
				team.Flex = s.name
			}
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func isOwnerLine(line string) bool {
	if line == "" || strings.Contains(line, ",") || strings.Contains(line, "@") {
		return false
	}
	return ownerLineRe.MatchString(strings.TrimSpace(line))
}

// cleanLines splits file content into trimmed lines, stripping any editor
// line-number prefixes the sheets sometimes carry.
func cleanLines(data []byte) []string {
	raw := strings.Split(string(data), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = linePrefixRe.ReplaceAllString(line, "")
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
