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

type ChampionService interface {
	Create(ctx context.Context, bolaoID int, input ChampionInput) (*models.Champion, error)
	GetByID(ctx context.Context, id int) (*models.Champion, error)
	ListByBolao(ctx context.Context, bolaoID int) ([]*models.Champion, error)
	Update(ctx context.Context, id int, input ChampionInput) (*models.Champion, error)
	Delete(ctx context.Context, id int) error
	SetResult(ctx context.Context, id, teamID int) (*models.Champion, error)
	ClearResult(ctx context.Context, id int) (*models.Champion, error)
	UpsertPick(ctx context.Context, userID int, role models.UserRole, championID, teamID int) (*models.ChampionPick, error)
	ListPicks(ctx context.Context, championID int) ([]*models.ChampionPick, error)
}

type ChampionInput struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Points      int       `json:"points"`
}

type championService struct {
	db           *sql.DB
	championRepo repositories.ChampionRepository
	pickRepo     repositories.ChampionPickRepository
	bolaoRepo    repositories.BolaoRepository
	notifier     LiveNotifier
	logger       *slog.Logger
	now          func() time.Time
}

func NewChampionService(
	db *sql.DB,
	championRepo repositories.ChampionRepository,
	pickRepo repositories.ChampionPickRepository,
	bolaoRepo repositories.BolaoRepository,
	notifier LiveNotifier,
	logger *slog.Logger,
) ChampionService {
	return &championService{
		db:           db,
		championRepo: championRepo,
		pickRepo:     pickRepo,
		bolaoRepo:    bolaoRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *championService) Create(ctx context.Context, bolaoID int, input ChampionInput) (*models.Champion, error) {
	if input.Name == "" {
		return nil, ErrChampionNameRequired
	}
	if input.Deadline.IsZero() || input.Deadline.Before(s.now()) {
		return nil, ErrDeadlineInPast
	}
	if input.Points < 0 {
		return nil, ErrPointsNegative
	}

	champion := &models.Champion{
		BolaoID:     bolaoID,
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Points:      input.Points,
	}
	if err := s.championRepo.Create(ctx, champion); err != nil {
		if errors.Is(err, repositories.ErrBolaoNotFound) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to create champion market: %w", err)
	}
	s.deriveStatus(champion)
	return champion, nil
}

func (s *championService) GetByID(ctx context.Context, id int) (*models.Champion, error) {
	champion, err := s.championRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to get champion market %d: %w", id, err)
	}
	s.deriveStatus(champion)
	return champion, nil
}

func (s *championService) ListByBolao(ctx context.Context, bolaoID int) ([]*models.Champion, error) {
	champions, err := s.championRepo.ListByBolao(ctx, bolaoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list champion markets for bolão %d: %w", bolaoID, err)
	}
	for _, champion := range champions {
		s.deriveStatus(champion)
	}
	return champions, nil
}

// Update edits the market's metadata. Moving the deadline into the future on
// an undecided market reopens it for picks with no further action: the status
// is derived, never stored.
func (s *championService) Update(ctx context.Context, id int, input ChampionInput) (*models.Champion, error) {
	if input.Name == "" {
		return nil, ErrChampionNameRequired
	}
	if input.Points < 0 {
		return nil, ErrPointsNegative
	}

	champion, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousDeadline := champion.Deadline

	champion.Name = input.Name
	champion.Description = input.Description
	if !input.Deadline.IsZero() {
		champion.Deadline = input.Deadline
	}
	champion.Points = input.Points

	// A future deadline is inconsistent with a locked-in result: moving the
	// deadline of a decided market to a future instant reopens it, clearing
	// the result and zeroing every pick as if the result had been cleared
	// explicitly. An update that leaves the deadline untouched never fires
	// this, so a rename cannot wipe an early result.
	reopen := champion.ResultTeamID != nil &&
		!champion.Deadline.Equal(previousDeadline) &&
		champion.Deadline.After(s.now())

	if err := s.championRepo.Update(ctx, champion); err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to update champion market %d: %w", id, err)
	}

	if reopen {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := s.pickRepo.ResetPointsByChampion(ctx, tx, id); err != nil {
			return nil, err
		}
		if err := s.championRepo.SetResult(ctx, tx, id, nil, nil); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit champion market reopening: %w", err)
		}

		champion.ResultTeamID = nil
		champion.DecidedAt = nil
		s.logger.Info("champion market reopened by deadline extension", slog.Int("champion_id", id))
	}

	s.deriveStatus(champion)
	if reopen {
		s.broadcast(champion.BolaoID, champion)
	}
	return champion, nil
}

func (s *championService) Delete(ctx context.Context, id int) error {
	if err := s.championRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return ErrChampionNotFound
		}
		return fmt.Errorf("failed to delete champion market %d: %w", id, err)
	}
	return nil
}

// SetResult decides the market and scores every pick in one transaction.
// Calling it again with a different team simply rescores; no reset needed.
func (s *championService) SetResult(ctx context.Context, id, teamID int) (*models.Champion, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	champion, err := s.championRepo.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to get champion market %d: %w", id, err)
	}

	bolao, err := s.bolaoRepo.GetByID(ctx, champion.BolaoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bolão %d: %w", champion.BolaoID, err)
	}
	points := scoring.ChampionPoints(*champion, bolao.Points)

	picks, err := s.pickRepo.ListByChampion(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	decidedAt := s.now()
	for _, pick := range picks {
		pick.Points = scoring.ScoreChampionPick(*pick, teamID, points)
		pick.ComputedAt = &decidedAt
		if err := s.pickRepo.UpdatePoints(ctx, tx, pick); err != nil {
			return nil, err
		}
	}

	if err := s.championRepo.SetResult(ctx, tx, id, &teamID, &decidedAt); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit champion result: %w", err)
	}

	champion.ResultTeamID = &teamID
	champion.DecidedAt = &decidedAt
	s.deriveStatus(champion)

	s.logger.Info("champion market decided",
		slog.Int("champion_id", id),
		slog.Int("team_id", teamID),
		slog.Int("scored_picks", len(picks)),
	)
	s.broadcast(champion.BolaoID, champion)
	return champion, nil
}

// ClearResult reverses a decision: zeroes every pick and drops the stored
// team. If the deadline still lies ahead the market goes straight back to
// accepting picks.
func (s *championService) ClearResult(ctx context.Context, id int) (*models.Champion, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	champion, err := s.championRepo.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to get champion market %d: %w", id, err)
	}
	if champion.ResultTeamID == nil {
		return nil, ErrChampionNotDecided
	}

	if err := s.pickRepo.ResetPointsByChampion(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.championRepo.SetResult(ctx, tx, id, nil, nil); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit champion result reversal: %w", err)
	}

	champion.ResultTeamID = nil
	champion.DecidedAt = nil
	s.deriveStatus(champion)

	s.logger.Info("champion market result cleared", slog.Int("champion_id", id))
	s.broadcast(champion.BolaoID, champion)
	return champion, nil
}

// UpsertPick creates or replaces the user's pick. A decided market refuses
// picks from everyone; a merely expired deadline still lets admins write.
func (s *championService) UpsertPick(ctx context.Context, userID int, role models.UserRole, championID, teamID int) (*models.ChampionPick, error) {
	champion, err := s.GetByID(ctx, championID)
	if err != nil {
		return nil, err
	}
	switch champion.Status {
	case models.ChampionStatusResultSet:
		return nil, ErrChampionClosed
	case models.ChampionStatusDeadlinePassed:
		if !role.IsAdmin() {
			return nil, ErrChampionClosed
		}
	}

	isParticipant, err := s.bolaoRepo.IsParticipant(ctx, champion.BolaoID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	existing, err := s.pickRepo.GetByUserAndChampion(ctx, userID, championID)
	switch {
	case err == nil:
		existing.TeamID = teamID
		if err := s.pickRepo.Update(ctx, existing); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to update champion pick %d: %w", existing.ID, err)
		}
		return existing, nil

	case errors.Is(err, repositories.ErrChampionPickNotFound):
		pick := &models.ChampionPick{UserID: userID, ChampionID: championID, TeamID: teamID}
		if err := s.pickRepo.Create(ctx, pick); err != nil {
			switch {
			case errors.Is(err, repositories.ErrChampionPickConflict):
				return nil, ErrChampionPickConflict
			case errors.Is(err, repositories.ErrChampionNotFound):
				return nil, ErrChampionNotFound
			}
			return nil, fmt.Errorf("failed to create champion pick: %w", err)
		}
		return pick, nil

	default:
		return nil, fmt.Errorf("failed to look up champion pick: %w", err)
	}
}

func (s *championService) ListPicks(ctx context.Context, championID int) ([]*models.ChampionPick, error) {
	if _, err := s.GetByID(ctx, championID); err != nil {
		return nil, err
	}
	picks, err := s.pickRepo.ListByChampion(ctx, nil, championID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks for champion market %d: %w", championID, err)
	}
	return picks, nil
}

func (s *championService) deriveStatus(champion *models.Champion) {
	champion.Status = scoring.ChampionStatus(champion.ResultTeamID, champion.Deadline, s.now())
}

func (s *championService) broadcast(bolaoID int, champion *models.Champion) {
	if s.notifier == nil {
		return
	}
	room := fmt.Sprintf("bolao_%d", bolaoID)
	s.notifier.BroadcastToRoom(room, live.Message{Type: live.EventChampionUpdated, Payload: champion})
	s.notifier.BroadcastToRoom(room, live.Message{Type: live.EventRankingChanged})
}
