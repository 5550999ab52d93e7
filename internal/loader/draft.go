package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DraftKey identifies a single draft pick by owner and the literal pick text,
// player name or full bet string.
type DraftKey struct {
	Owner string
	Pick  string
}

// ParseDraftRounds reads the draft sheet and returns the round each pick was
// made in. The first line is a tab-separated header of owner names; each
// "Round N" line carries that round's picks in owner-column order.
func ParseDraftRounds(path string) (map[DraftKey]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	lines := cleanLines(data)
	if len(lines) == 0 {
		return nil, fmt.Errorf("draft sheet %s is empty", path)
	}

	var owners []string
	for _, cell := range strings.Split(lines[0], "\t") {
		cell = strings.TrimSpace(cell)
		if cell == "" || strings.HasPrefix(cell, "Draft on") {
			continue
		}
		owners = append(owners, cell)
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("draft sheet %s has no owner header", path)
	}

	rounds := make(map[DraftKey]int)
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "Round") {
			continue
		}
		fields := strings.Split(line, "\t")
		round, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(fields[0], "Round")))
		if err != nil {
			continue
		}
		for col, pick := range fields[1:] {
			if col >= len(owners) {
				break
			}
			pick = strings.TrimSpace(strings.ReplaceAll(pick, `"`, ""))
			if pick == "" {
				continue
			}
			rounds[DraftKey{Owner: owners[col], Pick: pick}] = round
		}
	}
	return rounds, nil
}
