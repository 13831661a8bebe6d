package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchBadRelated = errors.New("match references a missing team, round or bolão")
)

// MatchFilters narrows listings. Nil fields mean "no filter". Date keeps
// matches whose kickoff falls on that calendar day.
type MatchFilters struct {
	RoundID  *int
	Statuses []models.MatchStatus
	Date     *time.Time
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByBolao(ctx context.Context, bolaoID int, filters MatchFilters) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	UpdateStatusAndResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, bolao_id, round_id, home_team_id, away_team_id,
	kickoff, knockout, status, home_goals, away_goals, penalty_winner, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (bolao_id, round_id, home_team_id, away_team_id, kickoff, knockout, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.BolaoID,
		match.RoundID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.Kickoff,
		match.Knockout,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrMatchBadRelated
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := scanMatch(exec.QueryRowContext(ctx, query, id), match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return match, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner, match *models.Match) error {
	var penaltyWinner sql.NullString
	err := row.Scan(
		&match.ID,
		&match.BolaoID,
		&match.RoundID,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.Kickoff,
		&match.Knockout,
		&match.Status,
		&match.HomeGoals,
		&match.AwayGoals,
		&penaltyWinner,
		&match.CreatedAt,
	)
	if err != nil {
		return err
	}
	if penaltyWinner.Valid {
		side := models.Side(penaltyWinner.String)
		match.PenaltyWinner = &side
	}
	return nil
}

func (r *postgresMatchRepository) ListByBolao(ctx context.Context, bolaoID int, filters MatchFilters) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE bolao_id = $1`
	args := []interface{}{bolaoID}

	if filters.RoundID != nil {
		args = append(args, *filters.RoundID)
		query += fmt.Sprintf(" AND round_id = $%d", len(args))
	}
	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, s := range filters.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		query += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}
	if filters.Date != nil {
		args = append(args, filters.Date.Format("2006-01-02"))
		query += fmt.Sprintf(" AND kickoff::date = $%d", len(args))
	}
	query += " ORDER BY kickoff ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for bolão %d: %w", bolaoID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match := &models.Match{}
		if err := scanMatch(rows, match); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET round_id = $1, home_team_id = $2, away_team_id = $3, kickoff = $4, knockout = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		match.RoundID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.Kickoff,
		match.Knockout,
		match.ID,
	)
	if err != nil {
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrMatchBadRelated
		}
		return fmt.Errorf("failed to update match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// UpdateStatusAndResult persists the lifecycle fields in one statement so a
// transition and its result land atomically inside the caller's transaction.
func (r *postgresMatchRepository) UpdateStatusAndResult(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE matches
		SET status = $1, home_goals = $2, away_goals = $3, penalty_winner = $4
		WHERE id = $5`

	var penaltyWinner interface{}
	if match.PenaltyWinner != nil {
		penaltyWinner = string(*match.PenaltyWinner)
	}

	result, err := exec.ExecContext(ctx, query,
		match.Status,
		match.HomeGoals,
		match.AwayGoals,
		penaltyWinner,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
