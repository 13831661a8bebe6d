package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrBolaoNameRequired     = errors.New("bolão name is required")
	ErrRoundNameRequired     = errors.New("round name is required")
	ErrChampionNameRequired  = errors.New("champion market name is required")
	ErrPointsNegative        = errors.New("point values must not be negative")
	ErrKickoffRequired       = errors.New("match kickoff time is required")
	ErrSameTeams             = errors.New("a match needs two distinct teams")
	ErrGoalsNegative         = errors.New("goals must not be negative")
	ErrPenaltyPickForbidden  = errors.New("penalty pick is only allowed for knockout matches")
	ErrInvalidStatus         = errors.New("invalid match status")
	ErrInvalidTransition     = errors.New("invalid match status transition")
	ErrPredictionsLocked     = errors.New("palpites for this match are locked")
	ErrChampionClosed        = errors.New("champion market is closed for picks")
	ErrChampionNotDecided    = errors.New("champion market has no result to clear")
	ErrDeadlineInPast        = errors.New("champion deadline must be in the future")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrBolaoNameConflict    = errors.New("bolão name is already in use")
	ErrParticipantConflict  = errors.New("user is already a participant of this bolão")
	ErrPredictionConflict   = errors.New("user already has a palpite for this match")
	ErrChampionPickConflict = errors.New("user already has a pick for this champion market")

	// Authentication and authorization
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrNotParticipant     = errors.New("user is not a participant of this bolão")

	// Entity-specific not-found errors
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrRoundNotFound        = errors.New("round not found")
	ErrBolaoNotFound        = errors.New("bolão not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrPredictionNotFound   = errors.New("palpite not found")
	ErrChampionNotFound     = errors.New("champion market not found")
	ErrChampionPickNotFound = errors.New("champion pick not found")
)
