package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

var (
	ErrBolaoNotFound       = errors.New("bolão not found")
	ErrBolaoNameConflict   = errors.New("bolão name is already in use")
	ErrParticipantConflict = errors.New("user is already a participant")
	ErrParticipantNotFound = errors.New("participant not found")
)

type BolaoRepository interface {
	Create(ctx context.Context, bolao *models.Bolao) error
	GetByID(ctx context.Context, id int) (*models.Bolao, error)
	List(ctx context.Context) ([]*models.Bolao, error)
	Update(ctx context.Context, bolao *models.Bolao) error
	UpdatePointConfig(ctx context.Context, id int, points models.PointConfig) error
	Delete(ctx context.Context, id int) error
	AddParticipant(ctx context.Context, bolaoID, userID int) error
	RemoveParticipant(ctx context.Context, bolaoID, userID int) error
	ListParticipants(ctx context.Context, bolaoID int) ([]models.User, error)
	IsParticipant(ctx context.Context, bolaoID, userID int) (bool, error)
}

type postgresBolaoRepository struct {
	db *sql.DB
}

func NewPostgresBolaoRepository(db *sql.DB) BolaoRepository {
	return &postgresBolaoRepository{db: db}
}

const bolaoColumns = `id, name, description, owner_id,
	pts_placar_exato, pts_placar_vencedor, pts_diferenca_gols, pts_placar_perdedor,
	pts_vencedor, pts_empate, pts_penaltis, pts_campeao, created_at`

func (r *postgresBolaoRepository) Create(ctx context.Context, bolao *models.Bolao) error {
	query := `
		INSERT INTO boloes (name, description, owner_id,
			pts_placar_exato, pts_placar_vencedor, pts_diferenca_gols, pts_placar_perdedor,
			pts_vencedor, pts_empate, pts_penaltis, pts_campeao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		bolao.Name,
		bolao.Description,
		bolao.OwnerID,
		bolao.Points.PlacarExato,
		bolao.Points.PlacarVencedor,
		bolao.Points.DiferencaGols,
		bolao.Points.PlacarPerdedor,
		bolao.Points.Vencedor,
		bolao.Points.Empate,
		bolao.Points.Penaltis,
		bolao.Points.Campeao,
	).Scan(&bolao.ID, &bolao.CreatedAt)

	if err != nil {
		if _, ok := violatedConstraint(err, pqUniqueViolation); ok {
			return ErrBolaoNameConflict
		}
		return fmt.Errorf("failed to insert bolão: %w", err)
	}
	return nil
}

func (r *postgresBolaoRepository) GetByID(ctx context.Context, id int) (*models.Bolao, error) {
	query := `SELECT ` + bolaoColumns + ` FROM boloes WHERE id = $1`

	bolao := &models.Bolao{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bolao.ID,
		&bolao.Name,
		&bolao.Description,
		&bolao.OwnerID,
		&bolao.Points.PlacarExato,
		&bolao.Points.PlacarVencedor,
		&bolao.Points.DiferencaGols,
		&bolao.Points.PlacarPerdedor,
		&bolao.Points.Vencedor,
		&bolao.Points.Empate,
		&bolao.Points.Penaltis,
		&bolao.Points.Campeao,
		&bolao.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBolaoNotFound
		}
		return nil, fmt.Errorf("failed to scan bolão: %w", err)
	}
	return bolao, nil
}

func (r *postgresBolaoRepository) List(ctx context.Context) ([]*models.Bolao, error) {
	query := `SELECT ` + bolaoColumns + ` FROM boloes ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bolões: %w", err)
	}
	defer rows.Close()

	boloes := make([]*models.Bolao, 0)
	for rows.Next() {
		var bolao models.Bolao
		err := rows.Scan(
			&bolao.ID,
			&bolao.Name,
			&bolao.Description,
			&bolao.OwnerID,
			&bolao.Points.PlacarExato,
			&bolao.Points.PlacarVencedor,
			&bolao.Points.DiferencaGols,
			&bolao.Points.PlacarPerdedor,
			&bolao.Points.Vencedor,
			&bolao.Points.Empate,
			&bolao.Points.Penaltis,
			&bolao.Points.Campeao,
			&bolao.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bolão row: %w", err)
		}
		boloes = append(boloes, &bolao)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bolão rows iteration: %w", err)
	}
	return boloes, nil
}

func (r *postgresBolaoRepository) Update(ctx context.Context, bolao *models.Bolao) error {
	query := `UPDATE boloes SET name = $1, description = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, bolao.Name, bolao.Description, bolao.ID)
	if err != nil {
		if _, ok := violatedConstraint(err, pqUniqueViolation); ok {
			return ErrBolaoNameConflict
		}
		return fmt.Errorf("failed to update bolão %d: %w", bolao.ID, err)
	}
	return checkAffectedRows(result, ErrBolaoNotFound)
}

func (r *postgresBolaoRepository) UpdatePointConfig(ctx context.Context, id int, points models.PointConfig) error {
	query := `
		UPDATE boloes
		SET pts_placar_exato = $1, pts_placar_vencedor = $2, pts_diferenca_gols = $3,
			pts_placar_perdedor = $4, pts_vencedor = $5, pts_empate = $6,
			pts_penaltis = $7, pts_campeao = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		points.PlacarExato,
		points.PlacarVencedor,
		points.DiferencaGols,
		points.PlacarPerdedor,
		points.Vencedor,
		points.Empate,
		points.Penaltis,
		points.Campeao,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update point config for bolão %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrBolaoNotFound)
}

func (r *postgresBolaoRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM boloes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bolão %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrBolaoNotFound)
}

func (r *postgresBolaoRepository) AddParticipant(ctx context.Context, bolaoID, userID int) error {
	query := `INSERT INTO bolao_participants (bolao_id, user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, bolaoID, userID)
	if err != nil {
		if _, ok := violatedConstraint(err, pqUniqueViolation); ok {
			return ErrParticipantConflict
		}
		if _, ok := violatedConstraint(err, pqForeignKeyViolation); ok {
			return ErrBolaoNotFound
		}
		return fmt.Errorf("failed to add participant %d to bolão %d: %w", userID, bolaoID, err)
	}
	return nil
}

func (r *postgresBolaoRepository) RemoveParticipant(ctx context.Context, bolaoID, userID int) error {
	query := `DELETE FROM bolao_participants WHERE bolao_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, bolaoID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant %d from bolão %d: %w", userID, bolaoID, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresBolaoRepository) ListParticipants(ctx context.Context, bolaoID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, u.created_at
		FROM users u
		JOIN bolao_participants bp ON bp.user_id = u.id
		WHERE bp.bolao_id = $1
		ORDER BY u.id ASC`

	rows, err := r.db.QueryContext(ctx, query, bolaoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants for bolão %d: %w", bolaoID, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during participant rows iteration: %w", err)
	}
	return users, nil
}

func (r *postgresBolaoRepository) IsParticipant(ctx context.Context, bolaoID, userID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bolao_participants WHERE bolao_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, bolaoID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return exists, nil
}
