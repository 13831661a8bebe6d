package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

type recordingRescorer struct {
	mu      sync.Mutex
	matches []int
	err     error
}

func (r *recordingRescorer) RescoreMatch(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.matches = append(r.matches, id)
	return nil
}

func (r *recordingRescorer) rescored() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := append([]int(nil), r.matches...)
	sort.Ints(ids)
	return ids
}

func TestUpdatePointConfig_RescoresOnlyFinalizedMatches(t *testing.T) {
	bolaoRepo := newFakeBolaoRepo(&models.Bolao{ID: 7, Points: testPointConfig})
	matchRepo := newFakeMatchRepo(
		&models.Match{ID: 1, BolaoID: 7, Status: models.MatchStatusFinal},
		&models.Match{ID: 2, BolaoID: 7, Status: models.MatchStatusOpen},
		&models.Match{ID: 3, BolaoID: 7, Status: models.MatchStatusFinal},
		&models.Match{ID: 4, BolaoID: 8, Status: models.MatchStatusFinal},
	)
	rescorer := &recordingRescorer{}
	service := NewBolaoService(bolaoRepo, matchRepo, rescorer, discardLogger())

	newPoints := testPointConfig
	newPoints.PlacarExato = 40

	rescored, err := service.UpdatePointConfig(context.Background(), 7, newPoints)

	require.NoError(t, err)
	sort.Ints(rescored)
	assert.Equal(t, []int{1, 3}, rescored)
	assert.Equal(t, []int{1, 3}, rescorer.rescored(), "open matches and other bolões stay untouched")
	assert.Equal(t, 40, bolaoRepo.boloes[7].Points.PlacarExato)
}

func TestUpdatePointConfig_IsIdempotent(t *testing.T) {
	bolaoRepo := newFakeBolaoRepo(&models.Bolao{ID: 7, Points: testPointConfig})
	matchRepo := newFakeMatchRepo(&models.Match{ID: 1, BolaoID: 7, Status: models.MatchStatusFinal})
	rescorer := &recordingRescorer{}
	service := NewBolaoService(bolaoRepo, matchRepo, rescorer, discardLogger())

	_, err := service.UpdatePointConfig(context.Background(), 7, testPointConfig)
	require.NoError(t, err)
	_, err = service.UpdatePointConfig(context.Background(), 7, testPointConfig)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1}, rescorer.rescored(), "a retry rescores again with the same outcome")
}

func TestUpdatePointConfig_NegativeValuesRefused(t *testing.T) {
	service := NewBolaoService(newFakeBolaoRepo(), newFakeMatchRepo(), &recordingRescorer{}, discardLogger())

	bad := testPointConfig
	bad.Empate = -1

	_, err := service.UpdatePointConfig(context.Background(), 7, bad)

	assert.ErrorIs(t, err, ErrPointsNegative)
}

func TestUpdatePointConfig_SurfacesRescoreFailure(t *testing.T) {
	bolaoRepo := newFakeBolaoRepo(&models.Bolao{ID: 7, Points: testPointConfig})
	matchRepo := newFakeMatchRepo(&models.Match{ID: 1, BolaoID: 7, Status: models.MatchStatusFinal})
	boom := errors.New("boom")
	service := NewBolaoService(bolaoRepo, matchRepo, &recordingRescorer{err: boom}, discardLogger())

	_, err := service.UpdatePointConfig(context.Background(), 7, testPointConfig)

	assert.ErrorIs(t, err, boom)
}

func TestBolaoCreate_OwnerBecomesParticipant(t *testing.T) {
	bolaoRepo := newFakeBolaoRepo()
	service := NewBolaoService(bolaoRepo, newFakeMatchRepo(), &recordingRescorer{}, discardLogger())

	bolao, err := service.Create(context.Background(), 42, BolaoInput{Name: "Bolão da Família"})

	require.NoError(t, err)
	assert.Equal(t, DefaultPointConfig, bolao.Points)

	isParticipant, err := bolaoRepo.IsParticipant(context.Background(), bolao.ID, 42)
	require.NoError(t, err)
	assert.True(t, isParticipant)
}

func TestBolaoCreate_NameRequired(t *testing.T) {
	service := NewBolaoService(newFakeBolaoRepo(), newFakeMatchRepo(), &recordingRescorer{}, discardLogger())

	_, err := service.Create(context.Background(), 42, BolaoInput{})

	assert.ErrorIs(t, err, ErrBolaoNameRequired)
}
