package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrRoundInUse    = errors.New("round is referenced by matches")
)

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id int) (*models.Round, error)
	List(ctx context.Context) ([]*models.Round, error)
	Update(ctx context.Context, round *models.Round) error
	Delete(ctx context.Context, id int) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (name, position)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, round.Name, round.Position).Scan(&round.ID, &round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id int) (*models.Round, error) {
	query := `SELECT id, name, position, created_at FROM rounds WHERE id = $1`

	round := &models.Round{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&round.ID, &round.Name, &round.Position, &round.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to scan round: %w", err)
	}
	return round, nil
}

func (r *postgresRoundRepository) List(ctx context.Context) ([]*models.Round, error) {
	query := `SELECT id, name, position, created_at FROM rounds ORDER BY position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]*models.Round, 0)
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(&round.ID, &round.Name, &round.Position, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round row: %w", err)
		}
		rounds = append(rounds, &round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during round rows iteration: %w", err)
	}
	return rounds, nil
}

func (r *postgresRoundRepository) Update(ctx context.Context, round *models.Round) error {
	query := `UPDATE rounds SET name = $1, position = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, round.Name, round.Position, round.ID)
	if err != nil {
		return fmt.Errorf("failed to update round %d: %w", round.ID, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrRoundInUse
		}
		return fmt.Errorf("failed to delete round %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
