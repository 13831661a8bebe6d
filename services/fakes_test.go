package services

import (
	"context"
	"sync"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/live"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
)

// In-memory repository fakes. Transactions are exercised with sqlmock in the
// tests that need them; the fakes just ignore the executor argument.

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
	for _, match := range matches {
		if match.ID >= repo.nextID {
			repo.nextID = match.ID + 1
		}
		repo.matches[match.ID] = match
	}
	return repo
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	match.ID = r.nextID
	r.nextID++
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

func (r *fakeMatchRepo) ListByBolao(_ context.Context, bolaoID int, filters repositories.MatchFilters) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, match := range r.matches {
		if match.BolaoID != bolaoID {
			continue
		}
		if len(filters.Statuses) > 0 {
			keep := false
			for _, status := range filters.Statuses {
				if match.Status == status {
					keep = true
				}
			}
			if !keep {
				continue
			}
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) UpdateStatusAndResult(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakePredictionRepo struct {
	predictions map[int]*models.Prediction
	nextID      int
}

func newFakePredictionRepo(predictions ...*models.Prediction) *fakePredictionRepo {
	repo := &fakePredictionRepo{predictions: make(map[int]*models.Prediction), nextID: 1}
	for _, prediction := range predictions {
		if prediction.ID >= repo.nextID {
			repo.nextID = prediction.ID + 1
		}
		repo.predictions[prediction.ID] = prediction
	}
	return repo
}

func (r *fakePredictionRepo) Create(_ context.Context, prediction *models.Prediction) error {
	for _, existing := range r.predictions {
		if existing.UserID == prediction.UserID && existing.MatchID == prediction.MatchID {
			return repositories.ErrPredictionConflict
		}
	}
	prediction.ID = r.nextID
	r.nextID++
	r.predictions[prediction.ID] = prediction
	return nil
}

func (r *fakePredictionRepo) Update(_ context.Context, prediction *models.Prediction) error {
	if _, ok := r.predictions[prediction.ID]; !ok {
		return repositories.ErrPredictionNotFound
	}
	r.predictions[prediction.ID] = prediction
	return nil
}

func (r *fakePredictionRepo) GetByID(_ context.Context, id int) (*models.Prediction, error) {
	prediction, ok := r.predictions[id]
	if !ok {
		return nil, repositories.ErrPredictionNotFound
	}
	return prediction, nil
}

func (r *fakePredictionRepo) GetByUserAndMatch(_ context.Context, userID, matchID int) (*models.Prediction, error) {
	for _, prediction := range r.predictions {
		if prediction.UserID == userID && prediction.MatchID == matchID {
			return prediction, nil
		}
	}
	return nil, repositories.ErrPredictionNotFound
}

func (r *fakePredictionRepo) ListByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) ([]*models.Prediction, error) {
	predictions := make([]*models.Prediction, 0)
	for id := 1; id < r.nextID; id++ {
		if prediction, ok := r.predictions[id]; ok && prediction.MatchID == matchID {
			predictions = append(predictions, prediction)
		}
	}
	return predictions, nil
}

func (r *fakePredictionRepo) ListByBolao(_ context.Context, _ int, _ repositories.MatchFilters) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, 0, len(r.predictions))
	for id := 1; id < r.nextID; id++ {
		if prediction, ok := r.predictions[id]; ok {
			predictions = append(predictions, *prediction)
		}
	}
	return predictions, nil
}

func (r *fakePredictionRepo) UpdateScore(_ context.Context, _ repositories.SQLExecutor, prediction *models.Prediction) error {
	if _, ok := r.predictions[prediction.ID]; !ok {
		return repositories.ErrPredictionNotFound
	}
	r.predictions[prediction.ID] = prediction
	return nil
}

func (r *fakePredictionRepo) ResetScoresByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) error {
	for _, prediction := range r.predictions {
		if prediction.MatchID == matchID {
			prediction.Points = 0
			prediction.ScorePoints = 0
			prediction.PenaltyPoints = 0
			prediction.Classification = nil
			prediction.ComputedAt = nil
		}
	}
	return nil
}

type fakeBolaoRepo struct {
	boloes       map[int]*models.Bolao
	participants map[int][]int
}

func newFakeBolaoRepo(boloes ...*models.Bolao) *fakeBolaoRepo {
	repo := &fakeBolaoRepo{boloes: make(map[int]*models.Bolao), participants: make(map[int][]int)}
	for _, bolao := range boloes {
		repo.boloes[bolao.ID] = bolao
	}
	return repo
}

func (r *fakeBolaoRepo) Create(_ context.Context, bolao *models.Bolao) error {
	bolao.ID = len(r.boloes) + 1
	r.boloes[bolao.ID] = bolao
	return nil
}

func (r *fakeBolaoRepo) GetByID(_ context.Context, id int) (*models.Bolao, error) {
	bolao, ok := r.boloes[id]
	if !ok {
		return nil, repositories.ErrBolaoNotFound
	}
	return bolao, nil
}

func (r *fakeBolaoRepo) List(_ context.Context) ([]*models.Bolao, error) {
	boloes := make([]*models.Bolao, 0, len(r.boloes))
	for _, bolao := range r.boloes {
		boloes = append(boloes, bolao)
	}
	return boloes, nil
}

func (r *fakeBolaoRepo) Update(_ context.Context, bolao *models.Bolao) error {
	if _, ok := r.boloes[bolao.ID]; !ok {
		return repositories.ErrBolaoNotFound
	}
	r.boloes[bolao.ID] = bolao
	return nil
}

func (r *fakeBolaoRepo) UpdatePointConfig(_ context.Context, id int, points models.PointConfig) error {
	bolao, ok := r.boloes[id]
	if !ok {
		return repositories.ErrBolaoNotFound
	}
	bolao.Points = points
	return nil
}

func (r *fakeBolaoRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.boloes[id]; !ok {
		return repositories.ErrBolaoNotFound
	}
	delete(r.boloes, id)
	return nil
}

func (r *fakeBolaoRepo) AddParticipant(_ context.Context, bolaoID, userID int) error {
	for _, existing := range r.participants[bolaoID] {
		if existing == userID {
			return repositories.ErrParticipantConflict
		}
	}
	r.participants[bolaoID] = append(r.participants[bolaoID], userID)
	return nil
}

func (r *fakeBolaoRepo) RemoveParticipant(_ context.Context, bolaoID, userID int) error {
	users := r.participants[bolaoID]
	for i, existing := range users {
		if existing == userID {
			r.participants[bolaoID] = append(users[:i], users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrParticipantNotFound
}

func (r *fakeBolaoRepo) ListParticipants(_ context.Context, bolaoID int) ([]models.User, error) {
	users := make([]models.User, 0)
	for _, userID := range r.participants[bolaoID] {
		users = append(users, models.User{ID: userID})
	}
	return users, nil
}

func (r *fakeBolaoRepo) IsParticipant(_ context.Context, bolaoID, userID int) (bool, error) {
	for _, existing := range r.participants[bolaoID] {
		if existing == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeChampionRepo struct {
	champions map[int]*models.Champion
}

func newFakeChampionRepo(champions ...*models.Champion) *fakeChampionRepo {
	repo := &fakeChampionRepo{champions: make(map[int]*models.Champion)}
	for _, champion := range champions {
		repo.champions[champion.ID] = champion
	}
	return repo
}

func (r *fakeChampionRepo) Create(_ context.Context, champion *models.Champion) error {
	champion.ID = len(r.champions) + 1
	r.champions[champion.ID] = champion
	return nil
}

func (r *fakeChampionRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Champion, error) {
	champion, ok := r.champions[id]
	if !ok {
		return nil, repositories.ErrChampionNotFound
	}
	return champion, nil
}

func (r *fakeChampionRepo) ListByBolao(_ context.Context, bolaoID int) ([]*models.Champion, error) {
	champions := make([]*models.Champion, 0)
	for _, champion := range r.champions {
		if champion.BolaoID == bolaoID {
			champions = append(champions, champion)
		}
	}
	return champions, nil
}

func (r *fakeChampionRepo) Update(_ context.Context, champion *models.Champion) error {
	if _, ok := r.champions[champion.ID]; !ok {
		return repositories.ErrChampionNotFound
	}
	r.champions[champion.ID] = champion
	return nil
}

func (r *fakeChampionRepo) SetResult(_ context.Context, _ repositories.SQLExecutor, id int, teamID *int, decidedAt *time.Time) error {
	champion, ok := r.champions[id]
	if !ok {
		return repositories.ErrChampionNotFound
	}
	champion.ResultTeamID = teamID
	champion.DecidedAt = decidedAt
	return nil
}

func (r *fakeChampionRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.champions[id]; !ok {
		return repositories.ErrChampionNotFound
	}
	delete(r.champions, id)
	return nil
}

type fakePickRepo struct {
	picks  map[int]*models.ChampionPick
	nextID int
}

func newFakePickRepo(picks ...*models.ChampionPick) *fakePickRepo {
	repo := &fakePickRepo{picks: make(map[int]*models.ChampionPick), nextID: 1}
	for _, pick := range picks {
		if pick.ID >= repo.nextID {
			repo.nextID = pick.ID + 1
		}
		repo.picks[pick.ID] = pick
	}
	return repo
}

func (r *fakePickRepo) Create(_ context.Context, pick *models.ChampionPick) error {
	for _, existing := range r.picks {
		if existing.UserID == pick.UserID && existing.ChampionID == pick.ChampionID {
			return repositories.ErrChampionPickConflict
		}
	}
	pick.ID = r.nextID
	r.nextID++
	r.picks[pick.ID] = pick
	return nil
}

func (r *fakePickRepo) Update(_ context.Context, pick *models.ChampionPick) error {
	if _, ok := r.picks[pick.ID]; !ok {
		return repositories.ErrChampionPickNotFound
	}
	r.picks[pick.ID] = pick
	return nil
}

func (r *fakePickRepo) GetByUserAndChampion(_ context.Context, userID, championID int) (*models.ChampionPick, error) {
	for _, pick := range r.picks {
		if pick.UserID == userID && pick.ChampionID == championID {
			return pick, nil
		}
	}
	return nil, repositories.ErrChampionPickNotFound
}

func (r *fakePickRepo) ListByChampion(_ context.Context, _ repositories.SQLExecutor, championID int) ([]*models.ChampionPick, error) {
	picks := make([]*models.ChampionPick, 0)
	for id := 1; id < r.nextID; id++ {
		if pick, ok := r.picks[id]; ok && pick.ChampionID == championID {
			picks = append(picks, pick)
		}
	}
	return picks, nil
}

func (r *fakePickRepo) ListByBolao(_ context.Context, _ int) ([]models.ChampionPick, error) {
	picks := make([]models.ChampionPick, 0, len(r.picks))
	for id := 1; id < r.nextID; id++ {
		if pick, ok := r.picks[id]; ok {
			picks = append(picks, *pick)
		}
	}
	return picks, nil
}

func (r *fakePickRepo) UpdatePoints(_ context.Context, _ repositories.SQLExecutor, pick *models.ChampionPick) error {
	if _, ok := r.picks[pick.ID]; !ok {
		return repositories.ErrChampionPickNotFound
	}
	r.picks[pick.ID] = pick
	return nil
}

func (r *fakePickRepo) ResetPointsByChampion(_ context.Context, _ repositories.SQLExecutor, championID int) error {
	for _, pick := range r.picks {
		if pick.ChampionID == championID {
			pick.Points = 0
			pick.ComputedAt = nil
		}
	}
	return nil
}

// fakeNotifier records every broadcast for assertions.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []live.Message
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, msg live.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	msg.RoomID = roomID
	n.messages = append(n.messages, msg)
}

func (n *fakeNotifier) events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	events := make([]string, 0, len(n.messages))
	for _, msg := range n.messages {
		events = append(events, msg.Type)
	}
	return events
}
