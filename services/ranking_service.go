package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/scoring"
)

type RankingService interface {
	GetRanking(ctx context.Context, bolaoID int, filters RankingFilters) ([]models.RankingRow, error)
}

// RankingFilters narrows the ranking to one round, one calendar day or a
// status subset. Champion points only count in the unfiltered (overall)
// ranking; a partial view compares match points alone.
type RankingFilters struct {
	RoundID  *int
	Date     *time.Time
	Statuses []models.MatchStatus
}

type rankingService struct {
	bolaoRepo      repositories.BolaoRepository
	predictionRepo repositories.PredictionRepository
	pickRepo       repositories.ChampionPickRepository
}

func NewRankingService(
	bolaoRepo repositories.BolaoRepository,
	predictionRepo repositories.PredictionRepository,
	pickRepo repositories.ChampionPickRepository,
) RankingService {
	return &rankingService{
		bolaoRepo:      bolaoRepo,
		predictionRepo: predictionRepo,
		pickRepo:       pickRepo,
	}
}

// GetRanking loads participants, scored palpites and champion picks in
// parallel, then folds them through the aggregator. Without an explicit
// status subset only ENCERRADO matches contribute; reverted matches carry
// zero points by construction, but filtering them out keeps the reversal
// edge airtight.
func (s *rankingService) GetRanking(ctx context.Context, bolaoID int, filters RankingFilters) ([]models.RankingRow, error) {
	if _, err := s.bolaoRepo.GetByID(ctx, bolaoID); err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to get bolão %d: %w", bolaoID, err)
	}

	statuses := filters.Statuses
	if len(statuses) == 0 {
		statuses = []models.MatchStatus{models.MatchStatusFinal}
	}
	matchFilters := repositories.MatchFilters{
		RoundID:  filters.RoundID,
		Date:     filters.Date,
		Statuses: statuses,
	}
	overall := filters.RoundID == nil && filters.Date == nil && len(filters.Statuses) == 0

	var (
		participants []models.User
		predictions  []models.Prediction
		picks        []models.ChampionPick
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		participants, err = s.bolaoRepo.ListParticipants(groupCtx, bolaoID)
		return err
	})
	group.Go(func() error {
		var err error
		predictions, err = s.predictionRepo.ListByBolao(groupCtx, bolaoID, matchFilters)
		return err
	})
	if overall {
		group.Go(func() error {
			var err error
			picks, err = s.pickRepo.ListByBolao(groupCtx, bolaoID)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load ranking data for bolão %d: %w", bolaoID, err)
	}

	return scoring.BuildRanking(participants, predictions, picks), nil
}
