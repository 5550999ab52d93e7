// Package loader ingests the pool's flat-file inputs (projection CSVs, the
// scoreboard sheet, and the draft sheet) and produces the model entities.
// All format assumptions live here; nothing downstream knows about files.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

// Player-name spellings differ between the projection sheets and the
// scoreboard; alias both directions so lookups succeed either way.
var nameAliases = map[string]string{
	"Devonta Smith": "DeVonta Smith",
}

// Team abbreviations also drift between sources.
var teamAliases = map[string]string{
	"JAC": "JAX",
	"LA":  "LAR",
	"WSH": "WAS",
}

// NormalizeTeam maps a team abbreviation onto the canonical form used by the
// game IDs.
func NormalizeTeam(team string) string {
	if canonical, ok := teamAliases[team]; ok {
		return canonical
	}
	return team
}

// LoadSkillProjections reads RB/WR/TE projections from a CSV laid out as
// Player,Team,POS,ATT,YDS,TDS,REC,YDS,TDS,FL,FPTS. The YDS/TDS columns are
// duplicated, rushing first, receiving second.
func LoadSkillProjections(path string) (map[string]models.PlayerProjection, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	projections := make(map[string]models.PlayerProjection)
	for i, row := range rows {
		if i == 0 || len(row) < 10 {
			continue
		}
		// Position cells can carry a rank suffix like "WR12".
		pos, err := models.ParsePosition(strings.TrimRight(strings.TrimSpace(row[2]), "0123456789"))
		if err != nil {
			continue // skip kickers, defenses, anything unrosterable
		}

		name := strings.TrimSpace(row[0])
		proj := models.PlayerProjection{
			Name:        name,
			Team:        NormalizeTeam(strings.TrimSpace(row[1])),
			Position:    pos,
			RushAtt:     parseFloat(row[3]),
			RushYds:     parseFloat(row[4]),
			RushTDs:     parseFloat(row[5]),
			Rec:         parseFloat(row[6]),
			RecYds:      parseFloat(row[7]),
			RecTDs:      parseFloat(row[8]),
			FumblesLost: parseFloat(row[9]),
		}
		storeWithAliases(projections, name, proj)
	}
	return projections, nil
}

// LoadQBProjections reads QB projections from a CSV laid out as
// Player,Team,ATT,CMP,YDS,TDS,INTS,ATT,YDS,TDS,FL,FPTS, passing columns
// first, rushing second.
func LoadQBProjections(path string) (map[string]models.PlayerProjection, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	projections := make(map[string]models.PlayerProjection)
	for i, row := range rows {
		if i == 0 || len(row) < 11 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		name := strings.TrimSpace(row[0])
		proj := models.PlayerProjection{
			Name:        name,
			Team:        NormalizeTeam(strings.TrimSpace(row[1])),
			Position:    models.PositionQB,
			PassAtt:     parseFloat(row[2]),
			PassCmp:     parseFloat(row[3]),
			PassYds:     parseFloat(row[4]),
			PassTDs:     parseFloat(row[5]),
			Ints:        parseFloat(row[6]),
			RushAtt:     parseFloat(row[7]),
			RushYds:     parseFloat(row[8]),
			RushTDs:     parseFloat(row[9]),
			FumblesLost: parseFloat(row[10]),
		}
		storeWithAliases(projections, name, proj)
	}
	return projections, nil
}

// LoadAllProjections merges the skill and QB sheets into one map keyed by
// player name.
func LoadAllProjections(skillPath, qbPath string) (map[string]models.PlayerProjection, error) {
	projections, err := LoadSkillProjections(skillPath)
	if err != nil {
		return nil, fmt.Errorf("loading skill projections: %w", err)
	}
	qbs, err := LoadQBProjections(qbPath)
	if err != nil {
		return nil, fmt.Errorf("loading QB projections: %w", err)
	}
	for name, proj := range qbs {
		projections[name] = proj
	}
	return projections, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // sheets have ragged trailing cells
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// parseFloat tolerates blanks and junk cells, which the sheets contain.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// storeWithAliases stores the projection under its sheet name and any known
// alternate spelling.
func storeWithAliases(projections map[string]models.PlayerProjection, name string, proj models.PlayerProjection) {
	projections[name] = proj
	for variant, canonical := range nameAliases {
		if name == canonical {
			projections[variant] = proj
		} else if name == variant {
			projections[canonical] = proj
		}
	}
}
