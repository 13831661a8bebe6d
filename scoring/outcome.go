package scoring

import (
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

// ResolveOutcome determines the winning side of a finished match. A tied
// score in a mata-mata match with a recorded penalty-shootout winner resolves
// to that side; every other tie is a draw.
func ResolveOutcome(homeGoals, awayGoals int, knockout bool, penaltyWinner *models.Side) models.Side {
	if homeGoals > awayGoals {
		return models.SideHome
	}
	if awayGoals > homeGoals {
		return models.SideAway
	}
	if knockout && penaltyWinner != nil {
		if *penaltyWinner == models.SideHome || *penaltyWinner == models.SideAway {
			return *penaltyWinner
		}
	}
	return models.SideDraw
}
