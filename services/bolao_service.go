package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
)

const rescoreConcurrency = 4

// MatchRescorer recomputes the palpite scores of one finalized match. The
// match service implements it; the indirection keeps the cascade testable.
type MatchRescorer interface {
	RescoreMatch(ctx context.Context, id int) error
}

type BolaoService interface {
	Create(ctx context.Context, ownerID int, input BolaoInput) (*models.Bolao, error)
	GetByID(ctx context.Context, id int) (*models.Bolao, error)
	List(ctx context.Context) ([]*models.Bolao, error)
	Update(ctx context.Context, id int, input BolaoInput) (*models.Bolao, error)
	UpdatePointConfig(ctx context.Context, id int, points models.PointConfig) ([]int, error)
	Delete(ctx context.Context, id int) error
	AddParticipant(ctx context.Context, bolaoID, userID int) error
	RemoveParticipant(ctx context.Context, bolaoID, userID int) error
	IsParticipant(ctx context.Context, bolaoID, userID int) (bool, error)
}

type BolaoInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type bolaoService struct {
	bolaoRepo repositories.BolaoRepository
	matchRepo repositories.MatchRepository
	rescorer  MatchRescorer
	logger    *slog.Logger
}

func NewBolaoService(
	bolaoRepo repositories.BolaoRepository,
	matchRepo repositories.MatchRepository,
	rescorer MatchRescorer,
	logger *slog.Logger,
) BolaoService {
	return &bolaoService{
		bolaoRepo: bolaoRepo,
		matchRepo: matchRepo,
		rescorer:  rescorer,
		logger:    logger,
	}
}

// DefaultPointConfig seeds newly created bolões. Owners adjust it later via
// UpdatePointConfig.
var DefaultPointConfig = models.PointConfig{
	PlacarExato:    25,
	PlacarVencedor: 18,
	DiferencaGols:  15,
	PlacarPerdedor: 12,
	Vencedor:       10,
	Empate:         15,
	Penaltis:       20,
	Campeao:        50,
}

func (s *bolaoService) Create(ctx context.Context, ownerID int, input BolaoInput) (*models.Bolao, error) {
	if input.Name == "" {
		return nil, ErrBolaoNameRequired
	}

	bolao := &models.Bolao{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     ownerID,
		Points:      DefaultPointConfig,
	}
	if err := s.bolaoRepo.Create(ctx, bolao); err != nil {
		if errors.Is(err, repositories.ErrBolaoNameConflict) {
			return nil, ErrBolaoNameConflict
		}
		return nil, fmt.Errorf("failed to create bolão: %w", err)
	}

	// The owner always plays.
	if err := s.bolaoRepo.AddParticipant(ctx, bolao.ID, ownerID); err != nil && !errors.Is(err, repositories.ErrParticipantConflict) {
		return nil, fmt.Errorf("failed to add owner as participant: %w", err)
	}
	return bolao, nil
}

func (s *bolaoService) GetByID(ctx context.Context, id int) (*models.Bolao, error) {
	bolao, err := s.bolaoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to get bolão %d: %w", id, err)
	}

	participants, err := s.bolaoRepo.ListParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of bolão %d: %w", id, err)
	}
	bolao.Participants = participants
	return bolao, nil
}

func (s *bolaoService) List(ctx context.Context) ([]*models.Bolao, error) {
	boloes, err := s.bolaoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bolões: %w", err)
	}
	return boloes, nil
}

func (s *bolaoService) Update(ctx context.Context, id int, input BolaoInput) (*models.Bolao, error) {
	if input.Name == "" {
		return nil, ErrBolaoNameRequired
	}

	bolao, err := s.bolaoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to get bolão %d: %w", id, err)
	}

	bolao.Name = input.Name
	bolao.Description = input.Description
	if err := s.bolaoRepo.Update(ctx, bolao); err != nil {
		if errors.Is(err, repositories.ErrBolaoNameConflict) {
			return nil, ErrBolaoNameConflict
		}
		return nil, fmt.Errorf("failed to update bolão %d: %w", id, err)
	}
	return bolao, nil
}

// UpdatePointConfig saves the new table and rescores every already finalized
// match under it. Returns the ids of the rescored matches. The rescore runs
// with a bounded errgroup; each match commits its own transaction, so the
// cascade is idempotent and can simply be retried on partial failure.
func (s *bolaoService) UpdatePointConfig(ctx context.Context, id int, points models.PointConfig) ([]int, error) {
	for _, value := range []int{
		points.PlacarExato, points.PlacarVencedor, points.DiferencaGols, points.PlacarPerdedor,
		points.Vencedor, points.Empate, points.Penaltis, points.Campeao,
	} {
		if value < 0 {
			return nil, ErrPointsNegative
		}
	}

	if err := s.bolaoRepo.UpdatePointConfig(ctx, id, points); err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to update point config of bolão %d: %w", id, err)
	}

	finalized, err := s.matchRepo.ListByBolao(ctx, id, repositories.MatchFilters{
		Statuses: []models.MatchStatus{models.MatchStatusFinal},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list finalized matches of bolão %d: %w", id, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(rescoreConcurrency)

	matchIDs := make([]int, 0, len(finalized))
	for _, match := range finalized {
		matchID := match.ID
		matchIDs = append(matchIDs, matchID)
		group.Go(func() error {
			return s.rescorer.RescoreMatch(groupCtx, matchID)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to rescore matches of bolão %d: %w", id, err)
	}

	s.logger.Info("point config updated",
		slog.Int("bolao_id", id),
		slog.Int("rescored_matches", len(matchIDs)),
	)
	return matchIDs, nil
}

func (s *bolaoService) Delete(ctx context.Context, id int) error {
	if err := s.bolaoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return ErrBolaoNotFound
		}
		return fmt.Errorf("failed to delete bolão %d: %w", id, err)
	}
	return nil
}

func (s *bolaoService) AddParticipant(ctx context.Context, bolaoID, userID int) error {
	if err := s.bolaoRepo.AddParticipant(ctx, bolaoID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantConflict):
			return ErrParticipantConflict
		case errors.Is(err, repositories.ErrBolaoNotFound):
			return ErrBolaoNotFound
		}
		return fmt.Errorf("failed to add participant %d to bolão %d: %w", userID, bolaoID, err)
	}
	return nil
}

func (s *bolaoService) RemoveParticipant(ctx context.Context, bolaoID, userID int) error {
	if err := s.bolaoRepo.RemoveParticipant(ctx, bolaoID, userID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrNotParticipant
		}
		return fmt.Errorf("failed to remove participant %d from bolão %d: %w", userID, bolaoID, err)
	}
	return nil
}

func (s *bolaoService) IsParticipant(ctx context.Context, bolaoID, userID int) (bool, error) {
	return s.bolaoRepo.IsParticipant(ctx, bolaoID, userID)
}
