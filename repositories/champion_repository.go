package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var ErrChampionNotFound = errors.New("champion market not found")

type ChampionRepository interface {
	Create(ctx context.Context, champion *models.Champion) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Champion, error)
	ListByBolao(ctx context.Context, bolaoID int) ([]*models.Champion, error)
	Update(ctx context.Context, champion *models.Champion) error
	SetResult(ctx context.Context, exec SQLExecutor, id int, teamID *int, decidedAt *time.Time) error
	Delete(ctx context.Context, id int) error
}

type postgresChampionRepository struct {
	db *sql.DB
}

func NewPostgresChampionRepository(db *sql.DB) ChampionRepository {
	return &postgresChampionRepository{db: db}
}

const championColumns = `id, bolao_id, name, description, deadline, points, result_team_id, decided_at, created_at`

func (r *postgresChampionRepository) Create(ctx context.Context, champion *models.Champion) error {
	query := `
		INSERT INTO champions (bolao_id, name, description, deadline, points)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		champion.BolaoID,
		champion.Name,
		champion.Description,
		champion.Deadline,
		champion.Points,
	).Scan(&champion.ID, &champion.CreatedAt)

	if err != nil {
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrBolaoNotFound
		}
		return fmt.Errorf("failed to insert champion market: %w", err)
	}
	return nil
}

func (r *postgresChampionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Champion, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT ` + championColumns + ` FROM champions WHERE id = $1`

	champion := &models.Champion{}
	err := scanChampion(exec.QueryRowContext(ctx, query, id), champion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to scan champion market: %w", err)
	}
	return champion, nil
}

func scanChampion(row rowScanner, champion *models.Champion) error {
	return row.Scan(
		&champion.ID,
		&champion.BolaoID,
		&champion.Name,
		&champion.Description,
		&champion.Deadline,
		&champion.Points,
		&champion.ResultTeamID,
		&champion.DecidedAt,
		&champion.CreatedAt,
	)
}

func (r *postgresChampionRepository) ListByBolao(ctx context.Context, bolaoID int) ([]*models.Champion, error) {
	query := `SELECT ` + championColumns + ` FROM champions WHERE bolao_id = $1 ORDER BY deadline ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, bolaoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query champion markets for bolão %d: %w", bolaoID, err)
	}
	defer rows.Close()

	champions := make([]*models.Champion, 0)
	for rows.Next() {
		champion := &models.Champion{}
		if err := scanChampion(rows, champion); err != nil {
			return nil, fmt.Errorf("failed to scan champion market row: %w", err)
		}
		champions = append(champions, champion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during champion market rows iteration: %w", err)
	}
	return champions, nil
}

func (r *postgresChampionRepository) Update(ctx context.Context, champion *models.Champion) error {
	query := `
		UPDATE champions
		SET name = $1, description = $2, deadline = $3, points = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		champion.Name,
		champion.Description,
		champion.Deadline,
		champion.Points,
		champion.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update champion market %d: %w", champion.ID, err)
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

// SetResult stores or clears the decided team. A nil teamID clears the result
// and the decided timestamp together.
func (r *postgresChampionRepository) SetResult(ctx context.Context, exec SQLExecutor, id int, teamID *int, decidedAt *time.Time) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE champions SET result_team_id = $1, decided_at = $2 WHERE id = $3`

	result, err := exec.ExecContext(ctx, query, teamID, decidedAt, id)
	if err != nil {
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to set result of champion market %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

func (r *postgresChampionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM champions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete champion market %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}
