package loader

import "github.com/ianmccall/wildcard-sim/internal/models"

// DefaultGames returns the six wildcard weekend games with their opening
// betting lines. Spread is positive when the away side is favored.
func DefaultGames() map[string]*models.NFLGame {
	games := []*models.NFLGame{
		{
			GameID:    "LAR @ CAR",
			AwayTeam:  "LAR",
			HomeTeam:  "CAR",
			Spread:    10.5,
			OverUnder: 46.5,
			StartTime: "Sat 4:30 PM",
		},
		{
			GameID:    "GB @ CHI",
			AwayTeam:  "GB",
			HomeTeam:  "CHI",
			Spread:    1.5,
			OverUnder: 45.5,
			StartTime: "Sat 8:00 PM",
		},
		{
			GameID:    "BUF @ JAX",
			AwayTeam:  "BUF",
			HomeTeam:  "JAX",
			Spread:    1.5,
			OverUnder: 51.5,
			StartTime: "Sun 1:00 PM",
		},
		{
			GameID:    "SF @ PHI",
			AwayTeam:  "SF",
			HomeTeam:  "PHI",
			Spread:    -4.5,
			OverUnder: 44.5,
			StartTime: "Sun 4:30 PM",
		},
		{
			GameID:    "LAC @ NE",
			AwayTeam:  "LAC",
			HomeTeam:  "NE",
			Spread:    -3.5,
			OverUnder: 46.5,
			StartTime: "Sun 8:00 PM",
		},
		{
			GameID:    "HOU @ PIT",
			AwayTeam:  "HOU",
			HomeTeam:  "PIT",
			Spread:    3.0,
			OverUnder: 39.5,
			StartTime: "Mon 8:00 PM",
		},
	}

	byID := make(map[string]*models.NFLGame, len(games))
	for _, game := range games {
		game.TimeRemainingSeconds = models.GameSeconds
		byID[game.GameID] = game
	}
	return byID
}
