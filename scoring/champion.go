package scoring

import (
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

// ChampionStatus derives the campeão status from its stored fields. It is a
// pure function of (result, deadline, now) so it can never go stale.
func ChampionStatus(resultTeamID *int, deadline, now time.Time) models.ChampionStatus {
	if resultTeamID != nil {
		return models.ChampionStatusResultSet
	}
	if now.After(deadline) {
		return models.ChampionStatusDeadlinePassed
	}
	return models.ChampionStatusOpen
}

// ChampionPoints resolves the points a correct pick is worth: the campeão's
// own value when set, otherwise the bolão default.
func ChampionPoints(champion models.Champion, cfg models.PointConfig) int {
	if champion.Points > 0 {
		return champion.Points
	}
	return cfg.Campeao
}

// ScoreChampionPick awards the flat configured points when the pick matches
// the decided result, zero otherwise.
func ScoreChampionPick(pick models.ChampionPick, resultTeamID int, points int) int {
	if pick.TeamID == resultTeamID {
		return points
	}
	return 0
}
