package handlers

import (
	"net/http"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/middleware"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/services"
)

type ChampionHandler struct {
	championService services.ChampionService
}

func NewChampionHandler(championService services.ChampionService) *ChampionHandler {
	return &ChampionHandler{championService: championService}
}

func (h *ChampionHandler) Create(w http.ResponseWriter, r *http.Request) {
	bolaoID, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ChampionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.Create(r.Context(), bolaoID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"campeao": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) ListByBolao(w http.ResponseWriter, r *http.Request) {
	bolaoID, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champions, err := h.championService.ListByBolao(r.Context(), bolaoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"campeoes": champions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"campeao": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ChampionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"campeao": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type championResultInput struct {
	TeamID int `json:"team_id"`
}

func (h *ChampionHandler) SetResult(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input championResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.SetResult(r.Context(), id, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"campeao": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) ClearResult(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.ClearResult(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"campeao": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type championPickInput struct {
	TeamID int `json:"team_id"`
}

func (h *ChampionHandler) UpsertPick(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input championPickInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pick, err := h.championService.UpsertPick(r.Context(), userID, role, id, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"pick": pick}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) ListPicks(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	picks, err := h.championService.ListPicks(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"picks": picks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
