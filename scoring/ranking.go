package scoring

import (
	"sort"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

// RankingFilters narrows which palpites feed the aggregation. A nil/empty
// field means "no filter". They are applied by the prediction repository;
// the aggregator itself only folds what it is given.
type RankingFilters struct {
	RoundID  *int
	Statuses []models.MatchStatus
	Date     *time.Time
}

// BuildRanking folds already-scored palpites and campeão picks into one row
// per participant and orders them. It never rescores anything: points and
// classification tags are read as stored.
//
// Tie-break keys, strictly in this order, all descending:
// total, champion points, PC, EM, PV, DG, PP, V. Residual ties keep the
// participant order they came in with.
func BuildRanking(users []models.User, predictions []models.Prediction, picks []models.ChampionPick) []models.RankingRow {
	rows := make([]models.RankingRow, 0, len(users))
	index := make(map[int]*models.RankingRow, len(users))
	for _, u := range users {
		rows = append(rows, models.RankingRow{UserID: u.ID, UserName: u.Name})
		index[u.ID] = &rows[len(rows)-1]
	}

	for _, p := range predictions {
		row, ok := index[p.UserID]
		if !ok {
			continue
		}
		row.MatchPoints += p.Points
		if p.Classification != nil {
			tally(row, *p.Classification)
		}
	}

	for _, pick := range picks {
		if row, ok := index[pick.UserID]; ok {
			row.ChampionPoints += pick.Points
		}
	}

	for i := range rows {
		rows[i].TotalPoints = rows[i].MatchPoints + rows[i].ChampionPoints
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		keysA := [8]int{a.TotalPoints, a.ChampionPoints, a.PC, a.EM, a.PV, a.DG, a.PP, a.V}
		keysB := [8]int{b.TotalPoints, b.ChampionPoints, b.PC, b.EM, b.PV, b.DG, b.PP, b.V}
		for k := range keysA {
			if keysA[k] != keysB[k] {
				return keysA[k] > keysB[k]
			}
		}
		return false
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// tally maps a classification tag to its counter bucket. Every
// winner-matching tag also feeds V; empate, penaltis_apenas and errou do not.
func tally(row *models.RankingRow, class models.Classification) {
	switch class {
	case models.ClassPlacarExato:
		row.PC++
		row.V++
	case models.ClassPlacarVencedor:
		row.PV++
		row.V++
	case models.ClassDiferencaGols:
		row.DG++
		row.V++
	case models.ClassPlacarPerdedor:
		row.PP++
		row.V++
	case models.ClassVencedorSimples:
		row.PV++
		row.V++
	case models.ClassEmpate:
		row.EM++
	case models.ClassErrou:
		row.E++
	}
}
