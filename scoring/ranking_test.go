package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

func classp(c models.Classification) *models.Classification { return &c }

func scored(userID, points int, class models.Classification) models.Prediction {
	return models.Prediction{UserID: userID, Points: points, Classification: classp(class)}
}

func TestBuildRanking_Aggregation(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "Renato"},
		{ID: 2, Name: "Marina"},
	}
	predictions := []models.Prediction{
		scored(1, 25, models.ClassPlacarExato),
		scored(1, 10, models.ClassVencedorSimples),
		scored(1, 0, models.ClassErrou),
		scored(2, 15, models.ClassEmpate),
		scored(2, 20, models.ClassPenaltisApenas),
		// palpite of someone who left the bolão; must be ignored
		scored(99, 25, models.ClassPlacarExato),
	}
	picks := []models.ChampionPick{
		{UserID: 2, Points: 50},
	}

	rows := BuildRanking(users, predictions, picks)
	require.Len(t, rows, 2)

	// Marina: 35 match + 50 champion = 85, ahead of Renato's 35.
	marina := rows[0]
	assert.Equal(t, 1, marina.Position)
	assert.Equal(t, "Marina", marina.UserName)
	assert.Equal(t, 85, marina.TotalPoints)
	assert.Equal(t, 35, marina.MatchPoints)
	assert.Equal(t, 50, marina.ChampionPoints)
	assert.Equal(t, 1, marina.EM)
	assert.Equal(t, 0, marina.V, "penalty-only hits do not feed the winner tally")

	renato := rows[1]
	assert.Equal(t, 2, renato.Position)
	assert.Equal(t, 35, renato.TotalPoints)
	assert.Equal(t, 1, renato.PC)
	assert.Equal(t, 1, renato.PV, "vencedor_simples feeds the PV bucket")
	assert.Equal(t, 2, renato.V)
	assert.Equal(t, 1, renato.E)
}

func TestBuildRanking_WinnerTally(t *testing.T) {
	users := []models.User{{ID: 1, Name: "Renato"}}
	predictions := []models.Prediction{
		scored(1, 25, models.ClassPlacarExato),
		scored(1, 18, models.ClassPlacarVencedor),
		scored(1, 15, models.ClassDiferencaGols),
		scored(1, 12, models.ClassPlacarPerdedor),
		scored(1, 10, models.ClassVencedorSimples),
		scored(1, 15, models.ClassEmpate),
		scored(1, 20, models.ClassPenaltisApenas),
		scored(1, 0, models.ClassErrou),
	}

	rows := BuildRanking(users, predictions, nil)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1, row.PC)
	assert.Equal(t, 2, row.PV)
	assert.Equal(t, 1, row.DG)
	assert.Equal(t, 1, row.PP)
	assert.Equal(t, 1, row.EM)
	assert.Equal(t, 1, row.E)
	assert.Equal(t, 5, row.V)
	assert.Equal(t, 115, row.TotalPoints)
}

// Each tie-break key must only matter when every key before it is equal.
func TestBuildRanking_TieBreakOrder(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
	}
	predictions := []models.Prediction{
		// Everyone totals 25 match points.
		scored(1, 25, models.ClassVencedorSimples),
		scored(2, 25, models.ClassPlacarExato),
		scored(3, 25, models.ClassPlacarExato),
		scored(3, 0, models.ClassEmpate),
	}

	rows := BuildRanking(users, predictions, nil)
	require.Len(t, rows, 3)

	// Equal totals and champion points; PC separates A from B/C, then EM
	// separates C from B.
	assert.Equal(t, "C", rows[0].UserName)
	assert.Equal(t, "B", rows[1].UserName)
	assert.Equal(t, "A", rows[2].UserName)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Position, rows[1].Position, rows[2].Position})
}

func TestBuildRanking_ChampionPointsBreakTotalTie(t *testing.T) {
	users := []models.User{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	predictions := []models.Prediction{scored(1, 50, models.ClassPlacarExato)}
	picks := []models.ChampionPick{{UserID: 2, Points: 50}}

	rows := BuildRanking(users, predictions, picks)

	// Both total 50; B's points came from the campeão, which ranks higher.
	assert.Equal(t, "B", rows[0].UserName)
	assert.Equal(t, "A", rows[1].UserName)
}

// Rows identical on all eight keys keep their original relative order.
func TestBuildRanking_StableForFullTies(t *testing.T) {
	users := []models.User{
		{ID: 5, Name: "Primeiro"},
		{ID: 2, Name: "Segundo"},
		{ID: 9, Name: "Terceiro"},
	}

	rows := BuildRanking(users, nil, nil)
	require.Len(t, rows, 3)

	assert.Equal(t, "Primeiro", rows[0].UserName)
	assert.Equal(t, "Segundo", rows[1].UserName)
	assert.Equal(t, "Terceiro", rows[2].UserName)
}

func TestBuildRanking_Empty(t *testing.T) {
	rows := BuildRanking(nil, nil, nil)
	assert.Empty(t, rows)
}
