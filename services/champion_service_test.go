package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var championNow = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

type championServiceFixture struct {
	service      *championService
	mock         sqlmock.Sqlmock
	championRepo *fakeChampionRepo
	pickRepo     *fakePickRepo
	bolaoRepo    *fakeBolaoRepo
	notifier     *fakeNotifier
}

func newChampionServiceFixture(t *testing.T, champions []*models.Champion, picks []*models.ChampionPick) *championServiceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bolaoRepo := newFakeBolaoRepo(&models.Bolao{ID: 7, Points: testPointConfig})
	bolaoRepo.participants[7] = []int{1, 2}
	championRepo := newFakeChampionRepo(champions...)
	pickRepo := newFakePickRepo(picks...)
	notifier := &fakeNotifier{}

	service := &championService{
		db:           db,
		championRepo: championRepo,
		pickRepo:     pickRepo,
		bolaoRepo:    bolaoRepo,
		notifier:     notifier,
		logger:       discardLogger(),
		now:          func() time.Time { return championNow },
	}
	return &championServiceFixture{
		service:      service,
		mock:         mock,
		championRepo: championRepo,
		pickRepo:     pickRepo,
		bolaoRepo:    bolaoRepo,
		notifier:     notifier,
	}
}

func TestChampionSetResult_ScoresEveryPick(t *testing.T) {
	champion := &models.Champion{ID: 1, BolaoID: 7, Name: "Campeão Geral", Deadline: championNow.Add(-time.Hour)}
	picks := []*models.ChampionPick{
		{ID: 1, UserID: 1, ChampionID: 1, TeamID: 3},
		{ID: 2, UserID: 2, ChampionID: 1, TeamID: 4},
	}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, picks)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	decided, err := f.service.SetResult(context.Background(), 1, 3)

	require.NoError(t, err)
	assert.Equal(t, models.ChampionStatusResultSet, decided.Status)
	require.NotNil(t, decided.ResultTeamID)
	assert.Equal(t, 3, *decided.ResultTeamID)

	// Points == 0 on the market falls back to the bolão's pts_campeao.
	hit := f.pickRepo.picks[1]
	assert.Equal(t, 50, hit.Points)
	require.NotNil(t, hit.ComputedAt)

	miss := f.pickRepo.picks[2]
	assert.Zero(t, miss.Points)
	require.NotNil(t, miss.ComputedAt)

	assert.Equal(t, []string{"CHAMPION_UPDATED", "RANKING_CHANGED"}, f.notifier.events())
}

func TestChampionSetResult_MarketPointsOverrideDefault(t *testing.T) {
	champion := &models.Champion{ID: 1, BolaoID: 7, Name: "Artilheiro", Deadline: championNow.Add(-time.Hour), Points: 80}
	picks := []*models.ChampionPick{{ID: 1, UserID: 1, ChampionID: 1, TeamID: 3}}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, picks)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.service.SetResult(context.Background(), 1, 3)

	require.NoError(t, err)
	assert.Equal(t, 80, f.pickRepo.picks[1].Points)
}

func TestChampionClearResult_ResetsPicks(t *testing.T) {
	decidedAt := championNow.Add(-time.Hour)
	champion := &models.Champion{
		ID:           1,
		BolaoID:      7,
		Name:         "Campeão Geral",
		Deadline:     championNow.Add(-24 * time.Hour),
		ResultTeamID: intPtr(3),
		DecidedAt:    &decidedAt,
	}
	picks := []*models.ChampionPick{
		{ID: 1, UserID: 1, ChampionID: 1, TeamID: 3, Points: 50, ComputedAt: &decidedAt},
	}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, picks)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	cleared, err := f.service.ClearResult(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, cleared.ResultTeamID)
	assert.Equal(t, models.ChampionStatusDeadlinePassed, cleared.Status)

	assert.Zero(t, f.pickRepo.picks[1].Points)
	assert.Nil(t, f.pickRepo.picks[1].ComputedAt)
}

func TestChampionClearResult_ReopensWhenDeadlineAhead(t *testing.T) {
	decidedAt := championNow.Add(-time.Hour)
	champion := &models.Champion{
		ID:           1,
		BolaoID:      7,
		Name:         "Campeão Geral",
		Deadline:     championNow.Add(24 * time.Hour),
		ResultTeamID: intPtr(3),
		DecidedAt:    &decidedAt,
	}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, nil)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	cleared, err := f.service.ClearResult(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, models.ChampionStatusOpen, cleared.Status, "undecided market with a future deadline accepts picks again")
}

func TestChampionClearResult_NotDecided(t *testing.T) {
	champion := &models.Champion{ID: 1, BolaoID: 7, Name: "Campeão Geral", Deadline: championNow.Add(time.Hour)}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, nil)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.service.ClearResult(context.Background(), 1)

	assert.ErrorIs(t, err, ErrChampionNotDecided)
}

func TestChampionUpsertPick_DeadlineGate(t *testing.T) {
	open := &models.Champion{ID: 1, BolaoID: 7, Name: "Aberto", Deadline: championNow.Add(time.Hour)}
	closed := &models.Champion{ID: 2, BolaoID: 7, Name: "Fechado", Deadline: championNow.Add(-time.Hour)}
	f := newChampionServiceFixture(t, []*models.Champion{open, closed}, nil)

	pick, err := f.service.UpsertPick(context.Background(), 1, models.RoleJogador, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, pick.TeamID)

	_, err = f.service.UpsertPick(context.Background(), 1, models.RoleJogador, 2, 3)
	assert.ErrorIs(t, err, ErrChampionClosed)
}

func TestChampionUpsertPick_BlockedOnceDecided(t *testing.T) {
	champion := &models.Champion{
		ID:           1,
		BolaoID:      7,
		Name:         "Campeão Geral",
		Deadline:     championNow.Add(time.Hour),
		ResultTeamID: intPtr(3),
	}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, nil)

	_, err := f.service.UpsertPick(context.Background(), 1, models.RoleJogador, 1, 4)

	assert.ErrorIs(t, err, ErrChampionClosed)
}

func TestChampionUpsertPick_ExtendedDeadlineReopens(t *testing.T) {
	champion := &models.Champion{ID: 1, BolaoID: 7, Name: "Campeão Geral", Deadline: championNow.Add(-time.Hour)}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, nil)

	_, err := f.service.UpsertPick(context.Background(), 1, models.RoleJogador, 1, 3)
	require.ErrorIs(t, err, ErrChampionClosed)

	_, err = f.service.Update(context.Background(), 1, ChampionInput{
		Name:     champion.Name,
		Deadline: championNow.Add(48 * time.Hour),
	})
	require.NoError(t, err)

	pick, err := f.service.UpsertPick(context.Background(), 1, models.RoleJogador, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, pick.TeamID)
}

func TestChampionUpsertPick_AdminBypassesDeadline(t *testing.T) {
	champion := &models.Champion{ID: 1, BolaoID: 7, Name: "Campeão Geral", Deadline: championNow.Add(-time.Hour)}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, nil)

	pick, err := f.service.UpsertPick(context.Background(), 1, models.RoleAdmin, 1, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, pick.TeamID)
}

func TestChampionUpdate_ExtendedDeadlineClearsResult(t *testing.T) {
	decidedAt := championNow.Add(-time.Hour)
	champion := &models.Champion{
		ID:           1,
		BolaoID:      7,
		Name:         "Campeão Geral",
		Deadline:     championNow.Add(-24 * time.Hour),
		ResultTeamID: intPtr(3),
		DecidedAt:    &decidedAt,
	}
	picks := []*models.ChampionPick{
		{ID: 1, UserID: 1, ChampionID: 1, TeamID: 3, Points: 50, ComputedAt: &decidedAt},
	}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, picks)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	updated, err := f.service.Update(context.Background(), 1, ChampionInput{
		Name:     champion.Name,
		Deadline: championNow.Add(48 * time.Hour),
	})

	require.NoError(t, err)
	assert.Nil(t, updated.ResultTeamID)
	assert.Nil(t, updated.DecidedAt)
	assert.Equal(t, models.ChampionStatusOpen, updated.Status)

	assert.Zero(t, f.pickRepo.picks[1].Points)
	assert.Nil(t, f.pickRepo.picks[1].ComputedAt)

	assert.Equal(t, []string{"CHAMPION_UPDATED", "RANKING_CHANGED"}, f.notifier.events())
}

func TestChampionUpdate_RenameKeepsEarlyResult(t *testing.T) {
	decidedAt := championNow.Add(-time.Hour)
	champion := &models.Champion{
		ID:           1,
		BolaoID:      7,
		Name:         "Campeão Geral",
		Deadline:     championNow.Add(24 * time.Hour),
		ResultTeamID: intPtr(3),
		DecidedAt:    &decidedAt,
	}
	picks := []*models.ChampionPick{
		{ID: 1, UserID: 1, ChampionID: 1, TeamID: 3, Points: 50, ComputedAt: &decidedAt},
	}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, picks)

	// A market can be decided before its deadline. Passing the deadline
	// through unchanged must not count as moving it.
	updated, err := f.service.Update(context.Background(), 1, ChampionInput{
		Name:     "Campeão Geral 2026",
		Deadline: champion.Deadline,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.ResultTeamID)
	assert.Equal(t, 3, *updated.ResultTeamID)
	assert.Equal(t, models.ChampionStatusResultSet, updated.Status)

	assert.Equal(t, 50, f.pickRepo.picks[1].Points)
	require.NotNil(t, f.pickRepo.picks[1].ComputedAt)
	assert.Empty(t, f.notifier.events())
}

func TestChampionUpsertPick_NonParticipant(t *testing.T) {
	champion := &models.Champion{ID: 1, BolaoID: 7, Name: "Campeão Geral", Deadline: championNow.Add(time.Hour)}
	f := newChampionServiceFixture(t, []*models.Champion{champion}, nil)

	_, err := f.service.UpsertPick(context.Background(), 99, models.RoleJogador, 1, 3)

	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestChampionCreate_PastDeadlineRefused(t *testing.T) {
	f := newChampionServiceFixture(t, nil, nil)

	_, err := f.service.Create(context.Background(), 7, ChampionInput{
		Name:     "Campeão Geral",
		Deadline: championNow.Add(-time.Minute),
	})

	assert.ErrorIs(t, err, ErrDeadlineInPast)
}
