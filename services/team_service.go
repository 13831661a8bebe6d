package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/storage"
)

var allowedBadgeContentTypes = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

var ErrBadgeContentType = errors.New("unsupported badge content type")

type TeamService interface {
	Create(ctx context.Context, name string) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Update(ctx context.Context, id int, name string) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	UploadBadge(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader}
}

func (s *teamService) Create(ctx context.Context, name string) (*models.Team, error) {
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	s.populateBadgeURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.populateBadgeURL(team)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, name string) (*models.Team, error) {
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	team.Name = name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	s.populateBadgeURL(team)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", id, err)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamInUse):
			return ErrForbiddenOperation
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	if team.BadgeKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.BadgeKey); err != nil {
			return fmt.Errorf("team deleted but badge cleanup failed: %w", err)
		}
	}
	return nil
}

// UploadBadge stores the new badge first, then swaps the key and removes the
// previous object, so a failed upload never leaves the team without a badge.
func (s *teamService) UploadBadge(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error) {
	ext, ok := allowedBadgeContentTypes[contentType]
	if !ok {
		return nil, ErrBadgeContentType
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	key := fmt.Sprintf("badges/team_%d.%s", id, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload badge for team %d: %w", id, err)
	}

	oldKey := team.BadgeKey
	if err := s.teamRepo.UpdateBadgeKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store badge key for team %d: %w", id, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		// Best effort: the new badge is already live.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.BadgeKey = &result.Key
	s.populateBadgeURL(team)
	return team, nil
}

func (s *teamService) populateBadgeURL(team *models.Team) {
	if team == nil || team.BadgeKey == nil || *team.BadgeKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.BadgeKey)
	if url != "" {
		team.BadgeURL = &url
	}
}
