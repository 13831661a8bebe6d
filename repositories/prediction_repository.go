package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var (
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrPredictionConflict = errors.New("user already has a prediction for this match")
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	Update(ctx context.Context, prediction *models.Prediction) error
	GetByID(ctx context.Context, id int) (*models.Prediction, error)
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Prediction, error)
	ListByBolao(ctx context.Context, bolaoID int, filters MatchFilters) ([]models.Prediction, error)
	UpdateScore(ctx context.Context, exec SQLExecutor, prediction *models.Prediction) error
	ResetScoresByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

const predictionColumns = `id, user_id, match_id, home_goals, away_goals, penalty_winner,
	points, score_points, penalty_points, classification, computed_at, created_at`

func (r *postgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, match_id, home_goals, away_goals, penalty_winner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.HomeGoals,
		prediction.AwayGoals,
		sideValue(prediction.PenaltyWinner),
	).Scan(&prediction.ID, &prediction.CreatedAt)

	if err != nil {
		if _, ok := violatedConstraint(err, pqUniqueViolation); ok {
			return ErrPredictionConflict
		}
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

func (r *postgresPredictionRepository) Update(ctx context.Context, prediction *models.Prediction) error {
	query := `
		UPDATE predictions
		SET home_goals = $1, away_goals = $2, penalty_winner = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		prediction.HomeGoals,
		prediction.AwayGoals,
		sideValue(prediction.PenaltyWinner),
		prediction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prediction %d: %w", prediction.ID, err)
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) GetByID(ctx context.Context, id int) (*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE user_id = $1 AND match_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, matchID))
}

func (r *postgresPredictionRepository) scanOne(row *sql.Row) (*models.Prediction, error) {
	prediction := &models.Prediction{}
	if err := scanPrediction(row, prediction); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}
	return prediction, nil
}

func scanPrediction(row rowScanner, prediction *models.Prediction) error {
	var (
		penaltyWinner  sql.NullString
		classification sql.NullString
	)
	err := row.Scan(
		&prediction.ID,
		&prediction.UserID,
		&prediction.MatchID,
		&prediction.HomeGoals,
		&prediction.AwayGoals,
		&penaltyWinner,
		&prediction.Points,
		&prediction.ScorePoints,
		&prediction.PenaltyPoints,
		&classification,
		&prediction.ComputedAt,
		&prediction.CreatedAt,
	)
	if err != nil {
		return err
	}
	if penaltyWinner.Valid {
		side := models.Side(penaltyWinner.String)
		prediction.PenaltyWinner = &side
	}
	if classification.Valid {
		class := models.Classification(classification.String)
		prediction.Classification = &class
	}
	return nil
}

func (r *postgresPredictionRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Prediction, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE match_id = $1 ORDER BY id ASC`

	rows, err := exec.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions for match %d: %w", matchID, err)
	}
	defer rows.Close()

	predictions := make([]*models.Prediction, 0)
	for rows.Next() {
		prediction := &models.Prediction{}
		if err := scanPrediction(rows, prediction); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during prediction rows iteration: %w", err)
	}
	return predictions, nil
}

// ListByBolao returns predictions joined against the bolão's matches, with
// the same filters the match listing accepts. The ranking service feeds the
// result straight into the aggregator.
func (r *postgresPredictionRepository) ListByBolao(ctx context.Context, bolaoID int, filters MatchFilters) ([]models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, p.match_id, p.home_goals, p.away_goals, p.penalty_winner,
			p.points, p.score_points, p.penalty_points, p.classification, p.computed_at, p.created_at
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
		WHERE m.bolao_id = $1`
	args := []interface{}{bolaoID}

	if filters.RoundID != nil {
		args = append(args, *filters.RoundID)
		query += fmt.Sprintf(" AND m.round_id = $%d", len(args))
	}
	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, s := range filters.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		query += fmt.Sprintf(" AND m.status = ANY($%d)", len(args))
	}
	if filters.Date != nil {
		args = append(args, filters.Date.Format("2006-01-02"))
		query += fmt.Sprintf(" AND m.kickoff::date = $%d", len(args))
	}
	query += " ORDER BY p.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions for bolão %d: %w", bolaoID, err)
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var prediction models.Prediction
		if err := scanPrediction(rows, &prediction); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during prediction rows iteration: %w", err)
	}
	return predictions, nil
}

func (r *postgresPredictionRepository) UpdateScore(ctx context.Context, exec SQLExecutor, prediction *models.Prediction) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE predictions
		SET points = $1, score_points = $2, penalty_points = $3, classification = $4, computed_at = $5
		WHERE id = $6`

	var classification interface{}
	if prediction.Classification != nil {
		classification = string(*prediction.Classification)
	}

	result, err := exec.ExecContext(ctx, query,
		prediction.Points,
		prediction.ScorePoints,
		prediction.PenaltyPoints,
		classification,
		prediction.ComputedAt,
		prediction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update score of prediction %d: %w", prediction.ID, err)
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

// ResetScoresByMatch zeroes every derived field when a match leaves ENCERRADO.
func (r *postgresPredictionRepository) ResetScoresByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE predictions
		SET points = 0, score_points = 0, penalty_points = 0, classification = NULL, computed_at = NULL
		WHERE match_id = $1`

	if _, err := exec.ExecContext(ctx, query, matchID); err != nil {
		return fmt.Errorf("failed to reset scores for match %d: %w", matchID, err)
	}
	return nil
}

func sideValue(side *models.Side) interface{} {
	if side == nil {
		return nil
	}
	return string(*side)
}
