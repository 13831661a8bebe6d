package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// Get returns the bolão's ranking, optionally narrowed with ?round_id=,
// ?status= (comma separated) or ?date=YYYY-MM-DD.
func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	bolaoID, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var filters services.RankingFilters
	if raw := r.URL.Query().Get("round_id"); raw != "" {
		roundID, err := strconv.Atoi(raw)
		if err != nil || roundID <= 0 {
			badRequestResponse(w, r, errors.New("invalid round_id parameter"))
			return
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
			badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
			return
		}
		filters.Date = &date
	}

	ranking, err := h.rankingService.GetRanking(r.Context(), bolaoID, filters)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
