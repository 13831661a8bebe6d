package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/scoring"
)

type PredictionService interface {
	Upsert(ctx context.Context, userID int, role models.UserRole, input PredictionInput) (*models.Prediction, error)
	GetMine(ctx context.Context, userID, matchID int) (*models.Prediction, error)
	ListByMatch(ctx context.Context, requesterID int, role models.UserRole, matchID int) ([]*models.Prediction, error)
}

type PredictionInput struct {
	MatchID       int          `json:"match_id"`
	HomeGoals     int          `json:"home_goals"`
	AwayGoals     int          `json:"away_goals"`
	PenaltyWinner *models.Side `json:"penalty_winner,omitempty"`
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	matchRepo      repositories.MatchRepository
	bolaoRepo      repositories.BolaoRepository
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	matchRepo repositories.MatchRepository,
	bolaoRepo repositories.BolaoRepository,
) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		bolaoRepo:      bolaoRepo,
		now:            time.Now,
	}
}

// Upsert creates or replaces the user's palpite for a match. Writes are
// refused once the match leaves PALPITES, and for non-admins also inside the
// virtual lock window around kickoff, even while the stored status still says
// PALPITES.
func (s *predictionService) Upsert(ctx context.Context, userID int, role models.UserRole, input PredictionInput) (*models.Prediction, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrGoalsNegative
	}

	match, err := s.matchRepo.GetByID(ctx, nil, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", input.MatchID, err)
	}

	if match.Status != models.MatchStatusOpen {
		return nil, ErrPredictionsLocked
	}
	if !role.IsAdmin() && scoring.IsVirtuallyLocked(match.Kickoff, s.now()) {
		return nil, ErrPredictionsLocked
	}

	if input.PenaltyWinner != nil {
		if !match.Knockout {
			return nil, ErrPenaltyPickForbidden
		}
		if *input.PenaltyWinner != models.SideHome && *input.PenaltyWinner != models.SideAway {
			return nil, ErrValidationFailed
		}
	}

	isParticipant, err := s.bolaoRepo.IsParticipant(ctx, match.BolaoID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	existing, err := s.predictionRepo.GetByUserAndMatch(ctx, userID, input.MatchID)
	switch {
	case err == nil:
		existing.HomeGoals = input.HomeGoals
		existing.AwayGoals = input.AwayGoals
		existing.PenaltyWinner = input.PenaltyWinner
		if err := s.predictionRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update palpite %d: %w", existing.ID, err)
		}
		return existing, nil

	case errors.Is(err, repositories.ErrPredictionNotFound):
		prediction := &models.Prediction{
			UserID:        userID,
			MatchID:       input.MatchID,
			HomeGoals:     input.HomeGoals,
			AwayGoals:     input.AwayGoals,
			PenaltyWinner: input.PenaltyWinner,
		}
		if err := s.predictionRepo.Create(ctx, prediction); err != nil {
			if errors.Is(err, repositories.ErrPredictionConflict) {
				return nil, ErrPredictionConflict
			}
			return nil, fmt.Errorf("failed to create palpite: %w", err)
		}
		return prediction, nil

	default:
		return nil, fmt.Errorf("failed to look up palpite: %w", err)
	}
}

func (s *predictionService) GetMine(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	prediction, err := s.predictionRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrPredictionNotFound) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to get palpite: %w", err)
	}
	return prediction, nil
}

// ListByMatch hides other users' palpites while the match still accepts them:
// before the lock a non-admin only sees their own entry.
func (s *predictionService) ListByMatch(ctx context.Context, requesterID int, role models.UserRole, matchID int) ([]*models.Prediction, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	predictions, err := s.predictionRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list palpites for match %d: %w", matchID, err)
	}

	stillOpen := match.Status == models.MatchStatusOpen && !scoring.IsVirtuallyLocked(match.Kickoff, s.now())
	if stillOpen && !role.IsAdmin() {
		visible := make([]*models.Prediction, 0, 1)
		for _, prediction := range predictions {
			if prediction.UserID == requesterID {
				visible = append(visible, prediction)
			}
		}
		return visible, nil
	}
	return predictions, nil
}
