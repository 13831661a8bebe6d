package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/live"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/scoring"
)

// LiveNotifier pushes events to the bolão's websocket room. The hub satisfies
// it; tests plug a recorder.
type LiveNotifier interface {
	BroadcastToRoom(roomID string, msg live.Message)
}

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByBolao(ctx context.Context, bolaoID int, filters repositories.MatchFilters) ([]*models.Match, error)
	Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
	TransitionStatus(ctx context.Context, id int, to models.MatchStatus, result *scoring.ResultPayload) (*models.Match, error)
	RescoreMatch(ctx context.Context, id int) error
}

type CreateMatchInput struct {
	BolaoID    int       `json:"bolao_id"`
	RoundID    int       `json:"round_id"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	Kickoff    time.Time `json:"kickoff"`
	Knockout   bool      `json:"knockout"`
}

type UpdateMatchInput struct {
	RoundID    *int       `json:"round_id"`
	HomeTeamID *int       `json:"home_team_id"`
	AwayTeamID *int       `json:"away_team_id"`
	Kickoff    *time.Time `json:"kickoff"`
	Knockout   *bool      `json:"knockout"`
}

type matchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	bolaoRepo      repositories.BolaoRepository
	notifier       LiveNotifier
	logger         *slog.Logger
	now            func() time.Time
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	bolaoRepo repositories.BolaoRepository,
	notifier LiveNotifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		bolaoRepo:      bolaoRepo,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.Kickoff.IsZero() {
		return nil, ErrKickoffRequired
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrSameTeams
	}
	if _, err := s.bolaoRepo.GetByID(ctx, input.BolaoID); err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to get bolão %d: %w", input.BolaoID, err)
	}

	match := &models.Match{
		BolaoID:    input.BolaoID,
		RoundID:    input.RoundID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		Kickoff:    input.Kickoff,
		Knockout:   input.Knockout,
		Status:     models.MatchStatusOpen,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchBadRelated) {
			return nil, ErrValidationFailed
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListByBolao(ctx context.Context, bolaoID int, filters repositories.MatchFilters) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByBolao(ctx, bolaoID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for bolão %d: %w", bolaoID, err)
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusFinal {
		return nil, ErrForbiddenOperation
	}

	if input.RoundID != nil {
		match.RoundID = *input.RoundID
	}
	if input.HomeTeamID != nil {
		match.HomeTeamID = *input.HomeTeamID
	}
	if input.AwayTeamID != nil {
		match.AwayTeamID = *input.AwayTeamID
	}
	if input.Kickoff != nil {
		match.Kickoff = *input.Kickoff
	}
	if input.Knockout != nil {
		match.Knockout = *input.Knockout
	}
	if match.HomeTeamID == match.AwayTeamID {
		return nil, ErrSameTeams
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchBadRelated):
			return nil, ErrValidationFailed
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

// TransitionStatus drives the PALPITES → TRANCADO → ENCERRADO machine,
// including the reversal edges out of ENCERRADO. Entering ENCERRADO scores
// every palpite of the match; leaving it clears the stored result and zeroes
// the derived fields. Everything happens in one transaction.
func (s *matchService) TransitionStatus(ctx context.Context, id int, to models.MatchStatus, result *scoring.ResultPayload) (*models.Match, error) {
	switch to {
	case models.MatchStatusOpen, models.MatchStatusLocked, models.MatchStatusFinal:
	default:
		return nil, ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := s.matchRepo.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	from := match.Status
	if !scoring.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	switch {
	case to == models.MatchStatusFinal:
		if result == nil {
			return nil, scoring.ErrGoalsRequired
		}
		if err := scoring.ValidateResult(match.Knockout, *result); err != nil {
			return nil, err
		}
		match.HomeGoals = result.HomeGoals
		match.AwayGoals = result.AwayGoals
		// ValidateResult guarantees a shootout winner only accompanies a
		// tied mata-mata.
		match.PenaltyWinner = nil
		if match.Knockout && *result.HomeGoals == *result.AwayGoals {
			match.PenaltyWinner = result.PenaltyWinner
		}
		match.Status = models.MatchStatusFinal
		if err := s.scorePredictions(ctx, tx, match); err != nil {
			return nil, err
		}

	case from == models.MatchStatusFinal:
		match.HomeGoals = nil
		match.AwayGoals = nil
		match.PenaltyWinner = nil
		match.Status = to
		if err := s.predictionRepo.ResetScoresByMatch(ctx, tx, id); err != nil {
			return nil, err
		}

	default:
		match.Status = to
	}

	if err := s.matchRepo.UpdateStatusAndResult(ctx, tx, match); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match transition: %w", err)
	}

	s.logger.Info("match status changed",
		slog.Int("match_id", id),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	s.broadcast(match.BolaoID, live.EventMatchUpdated, match)
	if to == models.MatchStatusFinal || from == models.MatchStatusFinal {
		s.broadcast(match.BolaoID, live.EventRankingChanged, nil)
	}
	return match, nil
}

// RescoreMatch recomputes every palpite of an already finalized match, used
// after the bolão's point configuration changes. Matches not in ENCERRADO
// are left alone.
func (s *matchService) RescoreMatch(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := s.matchRepo.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get match %d: %w", id, err)
	}
	if match.Status != models.MatchStatusFinal {
		return nil
	}

	if err := s.scorePredictions(ctx, tx, match); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rescore of match %d: %w", id, err)
	}

	s.broadcast(match.BolaoID, live.EventRankingChanged, nil)
	return nil
}

func (s *matchService) scorePredictions(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	if match.HomeGoals == nil || match.AwayGoals == nil {
		return scoring.ErrGoalsRequired
	}

	bolao, err := s.bolaoRepo.GetByID(ctx, match.BolaoID)
	if err != nil {
		return fmt.Errorf("failed to get bolão %d: %w", match.BolaoID, err)
	}

	predictions, err := s.predictionRepo.ListByMatch(ctx, exec, match.ID)
	if err != nil {
		return err
	}

	result := scoring.MatchResult{
		HomeGoals:     *match.HomeGoals,
		AwayGoals:     *match.AwayGoals,
		Knockout:      match.Knockout,
		PenaltyWinner: match.PenaltyWinner,
	}
	computedAt := s.now()

	for _, prediction := range predictions {
		outcome := scoring.ScorePrediction(bolao.Points, result, scoring.PredictionInput{
			HomeGoals:     prediction.HomeGoals,
			AwayGoals:     prediction.AwayGoals,
			PenaltyWinner: prediction.PenaltyWinner,
		})
		prediction.Points = outcome.Points
		prediction.ScorePoints = outcome.ScorePoints
		prediction.PenaltyPoints = outcome.PenaltyPoints
		class := outcome.Classification
		prediction.Classification = &class
		prediction.ComputedAt = &computedAt

		if err := s.predictionRepo.UpdateScore(ctx, exec, prediction); err != nil {
			return err
		}
	}
	return nil
}

func (s *matchService) broadcast(bolaoID int, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastToRoom(fmt.Sprintf("bolao_%d", bolaoID), live.Message{Type: event, Payload: payload})
}
