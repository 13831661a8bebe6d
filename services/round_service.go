package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
)

type RoundService interface {
	Create(ctx context.Context, input RoundInput) (*models.Round, error)
	GetByID(ctx context.Context, id int) (*models.Round, error)
	List(ctx context.Context) ([]*models.Round, error)
	Update(ctx context.Context, id int, input RoundInput) (*models.Round, error)
	Delete(ctx context.Context, id int) error
}

type RoundInput struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type roundService struct {
	roundRepo repositories.RoundRepository
}

func NewRoundService(roundRepo repositories.RoundRepository) RoundService {
	return &roundService{roundRepo: roundRepo}
}

func (s *roundService) Create(ctx context.Context, input RoundInput) (*models.Round, error) {
	if input.Name == "" {
		return nil, ErrRoundNameRequired
	}

	round := &models.Round{Name: input.Name, Position: input.Position}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}
	return round, nil
}

func (s *roundService) GetByID(ctx context.Context, id int) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	return round, nil
}

func (s *roundService) List(ctx context.Context) ([]*models.Round, error) {
	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func (s *roundService) Update(ctx context.Context, id int, input RoundInput) (*models.Round, error) {
	if input.Name == "" {
		return nil, ErrRoundNameRequired
	}

	round := &models.Round{ID: id, Name: input.Name, Position: input.Position}
	if err := s.roundRepo.Update(ctx, round); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to update round %d: %w", id, err)
	}
	return round, nil
}

func (s *roundService) Delete(ctx context.Context, id int) error {
	if err := s.roundRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRoundNotFound):
			return ErrRoundNotFound
		case errors.Is(err, repositories.ErrRoundInUse):
			return ErrForbiddenOperation
		}
		return fmt.Errorf("failed to delete round %d: %w", id, err)
	}
	return nil
}
