package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
)

func intp(v int) *int { return &v }

func TestCanTransition(t *testing.T) {
	open := models.MatchStatusOpen
	locked := models.MatchStatusLocked
	final := models.MatchStatusFinal

	allowed := [][2]models.MatchStatus{
		{open, locked}, {open, final}, {locked, final}, {final, open}, {final, locked},
		{open, open}, {locked, locked}, {final, final},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s should be allowed", tr[0], tr[1])
	}

	assert.False(t, CanTransition(locked, open), "TRANCADO -> PALPITES is not allowed")
	assert.False(t, CanTransition(open, "INVENTADO"))
	assert.False(t, CanTransition("INVENTADO", open))
}

func TestValidateResult(t *testing.T) {
	tests := []struct {
		name     string
		knockout bool
		payload  ResultPayload
		wantErr  error
	}{
		{"missing goals", false, ResultPayload{}, ErrGoalsRequired},
		{"missing away goals", false, ResultPayload{HomeGoals: intp(1)}, ErrGoalsRequired},
		{"negative goals", false, ResultPayload{HomeGoals: intp(-1), AwayGoals: intp(0)}, ErrGoalsNegative},
		{"regular match ok", false, ResultPayload{HomeGoals: intp(2), AwayGoals: intp(2)}, nil},
		{"regular match with shootout winner", false, ResultPayload{HomeGoals: intp(1), AwayGoals: intp(1), PenaltyWinner: side(models.SideHome)}, ErrPenaltyWinnerNotAllowed},
		{"tied knockout without shootout winner", true, ResultPayload{HomeGoals: intp(0), AwayGoals: intp(0)}, ErrPenaltyWinnerRequired},
		{"tied knockout with shootout winner", true, ResultPayload{HomeGoals: intp(1), AwayGoals: intp(1), PenaltyWinner: side(models.SideAway)}, nil},
		{"tied knockout with draw as shootout winner", true, ResultPayload{HomeGoals: intp(1), AwayGoals: intp(1), PenaltyWinner: side(models.SideDraw)}, ErrPenaltyWinnerInvalid},
		{"decisive knockout with shootout winner", true, ResultPayload{HomeGoals: intp(2), AwayGoals: intp(0), PenaltyWinner: side(models.SideHome)}, ErrPenaltyWinnerNotAllowed},
		{"decided knockout without shootout winner", true, ResultPayload{HomeGoals: intp(3), AwayGoals: intp(1)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResult(tt.knockout, tt.payload)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsVirtuallyLocked(t *testing.T) {
	kickoff := time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before kickoff", kickoff.Add(-2 * time.Hour), false},
		{"sixteen minutes before", kickoff.Add(-16 * time.Minute), false},
		{"window opens 15 minutes before", kickoff.Add(-15 * time.Minute), true},
		{"at kickoff", kickoff, true},
		{"during the match", kickoff.Add(90 * time.Minute), true},
		{"window closes 240 minutes after", kickoff.Add(240 * time.Minute), true},
		{"just past the window", kickoff.Add(241 * time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVirtuallyLocked(kickoff, tt.now))
		})
	}
}
