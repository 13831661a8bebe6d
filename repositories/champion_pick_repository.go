package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var (
	ErrChampionPickNotFound = errors.New("champion pick not found")
	ErrChampionPickConflict = errors.New("user already has a pick for this champion market")
)

type ChampionPickRepository interface {
	Create(ctx context.Context, pick *models.ChampionPick) error
	Update(ctx context.Context, pick *models.ChampionPick) error
	GetByUserAndChampion(ctx context.Context, userID, championID int) (*models.ChampionPick, error)
	ListByChampion(ctx context.Context, exec SQLExecutor, championID int) ([]*models.ChampionPick, error)
	ListByBolao(ctx context.Context, bolaoID int) ([]models.ChampionPick, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, pick *models.ChampionPick) error
	ResetPointsByChampion(ctx context.Context, exec SQLExecutor, championID int) error
}

type postgresChampionPickRepository struct {
	db *sql.DB
}

func NewPostgresChampionPickRepository(db *sql.DB) ChampionPickRepository {
	return &postgresChampionPickRepository{db: db}
}

const championPickColumns = `id, user_id, champion_id, team_id, points, computed_at, created_at`

func (r *postgresChampionPickRepository) Create(ctx context.Context, pick *models.ChampionPick) error {
	query := `
		INSERT INTO champion_picks (user_id, champion_id, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, pick.UserID, pick.ChampionID, pick.TeamID).
		Scan(&pick.ID, &pick.CreatedAt)
	if err != nil {
		if _, ok := violatedConstraint(err, pqUniqueViolation); ok {
			return ErrChampionPickConflict
		}
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrChampionNotFound
		}
		return fmt.Errorf("failed to insert champion pick: %w", err)
	}
	return nil
}

func (r *postgresChampionPickRepository) Update(ctx context.Context, pick *models.ChampionPick) error {
	query := `UPDATE champion_picks SET team_id = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, pick.TeamID, pick.ID)
	if err != nil {
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to update champion pick %d: %w", pick.ID, err)
	}
	return checkAffectedRows(result, ErrChampionPickNotFound)
}

func (r *postgresChampionPickRepository) GetByUserAndChampion(ctx context.Context, userID, championID int) (*models.ChampionPick, error) {
	query := `SELECT ` + championPickColumns + ` FROM champion_picks WHERE user_id = $1 AND champion_id = $2`

	pick := &models.ChampionPick{}
	err := scanChampionPick(r.db.QueryRowContext(ctx, query, userID, championID), pick)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionPickNotFound
		}
		return nil, fmt.Errorf("failed to scan champion pick: %w", err)
	}
	return pick, nil
}

func scanChampionPick(row rowScanner, pick *models.ChampionPick) error {
	return row.Scan(
		&pick.ID,
		&pick.UserID,
		&pick.ChampionID,
		&pick.TeamID,
		&pick.Points,
		&pick.ComputedAt,
		&pick.CreatedAt,
	)
}

func (r *postgresChampionPickRepository) ListByChampion(ctx context.Context, exec SQLExecutor, championID int) ([]*models.ChampionPick, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT ` + championPickColumns + ` FROM champion_picks WHERE champion_id = $1 ORDER BY id ASC`

	rows, err := exec.QueryContext(ctx, query, championID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks for champion market %d: %w", championID, err)
	}
	defer rows.Close()

	picks := make([]*models.ChampionPick, 0)
	for rows.Next() {
		pick := &models.ChampionPick{}
		if err := scanChampionPick(rows, pick); err != nil {
			return nil, fmt.Errorf("failed to scan champion pick row: %w", err)
		}
		picks = append(picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during champion pick rows iteration: %w", err)
	}
	return picks, nil
}

func (r *postgresChampionPickRepository) ListByBolao(ctx context.Context, bolaoID int) ([]models.ChampionPick, error) {
	query := `
		SELECT cp.id, cp.user_id, cp.champion_id, cp.team_id, cp.points, cp.computed_at, cp.created_at
		FROM champion_picks cp
		JOIN champions c ON c.id = cp.champion_id
		WHERE c.bolao_id = $1
		ORDER BY cp.id ASC`

	rows, err := r.db.QueryContext(ctx, query, bolaoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query champion picks for bolão %d: %w", bolaoID, err)
	}
	defer rows.Close()

	picks := make([]models.ChampionPick, 0)
	for rows.Next() {
		var pick models.ChampionPick
		if err := scanChampionPick(rows, &pick); err != nil {
			return nil, fmt.Errorf("failed to scan champion pick row: %w", err)
		}
		picks = append(picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during champion pick rows iteration: %w", err)
	}
	return picks, nil
}

func (r *postgresChampionPickRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, pick *models.ChampionPick) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE champion_picks SET points = $1, computed_at = $2 WHERE id = $3`

	result, err := exec.ExecContext(ctx, query, pick.Points, pick.ComputedAt, pick.ID)
	if err != nil {
		return fmt.Errorf("failed to update points of champion pick %d: %w", pick.ID, err)
	}
	return checkAffectedRows(result, ErrChampionPickNotFound)
}

func (r *postgresChampionPickRepository) ResetPointsByChampion(ctx context.Context, exec SQLExecutor, championID int) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE champion_picks SET points = 0, computed_at = NULL WHERE champion_id = $1`

	if _, err := exec.ExecContext(ctx, query, championID); err != nil {
		return fmt.Errorf("failed to reset points for champion market %d: %w", championID, err)
	}
	return nil
}
