package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/scoring"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	bolaoID, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.BolaoID = bolaoID

	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByBolao accepts ?round_id=, ?status= (comma separated) and ?date=
// (YYYY-MM-DD) filters.
func (h *MatchHandler) ListByBolao(w http.ResponseWriter, r *http.Request) {
	bolaoID, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	filters, err := matchFiltersFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListByBolao(r.Context(), bolaoID, filters)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transitionInput struct {
	Status        models.MatchStatus `json:"status"`
	HomeGoals     *int               `json:"home_goals"`
	AwayGoals     *int               `json:"away_goals"`
	PenaltyWinner *models.Side       `json:"penalty_winner"`
}

// TransitionStatus drives the match lifecycle. Finalizing carries the result
// in the same payload; reopening needs only the target status.
func (h *MatchHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input transitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var result *scoring.ResultPayload
	if input.HomeGoals != nil || input.AwayGoals != nil || input.PenaltyWinner != nil {
		result = &scoring.ResultPayload{
			HomeGoals:     input.HomeGoals,
			AwayGoals:     input.AwayGoals,
			PenaltyWinner: input.PenaltyWinner,
		}
	}

	match, err := h.matchService.TransitionStatus(r.Context(), id, input.Status, result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func matchFiltersFromQuery(r *http.Request) (repositories.MatchFilters, error) {
	var filters repositories.MatchFilters

	if raw := r.URL.Query().Get("round_id"); raw != "" {
		roundID, err := strconv.Atoi(raw)
		if err != nil || roundID <= 0 {
			return filters, errors.New("invalid round_id parameter")
		}
		filters.RoundID = &roundID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, status := range strings.Split(raw, ",") {
			filters.Statuses = append(filters.Statuses, models.MatchStatus(strings.TrimSpace(status)))
		}
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, err
		}
		filters.Date = &date
	}
	return filters, nil
}
