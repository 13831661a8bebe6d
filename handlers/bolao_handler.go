package handlers

import (
	"net/http"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/middleware"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/models"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/services"
)

type BolaoHandler struct {
	bolaoService services.BolaoService
}

func NewBolaoHandler(bolaoService services.BolaoService) *BolaoHandler {
	return &BolaoHandler{bolaoService: bolaoService}
}

func (h *BolaoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.BolaoInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bolao, err := h.bolaoService.Create(r.Context(), ownerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bolao": bolao}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BolaoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bolao, err := h.bolaoService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bolao": bolao}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BolaoHandler) List(w http.ResponseWriter, r *http.Request) {
	boloes, err := h.bolaoService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"boloes": boloes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BolaoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.requireOwnerOrAdmin(r, id); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	var input services.BolaoInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bolao, err := h.bolaoService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bolao": bolao}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePointConfig swaps the scoring table and reports which finalized
// matches were rescored under the new values.
func (h *BolaoHandler) UpdatePointConfig(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.requireOwnerOrAdmin(r, id); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	var input models.PointConfig
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rescored, err := h.bolaoService.UpdatePointConfig(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	response := jsonResponse{
		"points":           input,
		"rescored_matches": rescored,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BolaoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.requireOwnerOrAdmin(r, id); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	if err := h.bolaoService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type participantInput struct {
	UserID int `json:"user_id"`
}

func (h *BolaoHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.requireOwnerOrAdmin(r, id); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	var input participantInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bolaoService.AddParticipant(r.Context(), id, input.UserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BolaoHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := idFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.requireOwnerOrAdmin(r, id); err != nil {
		forbiddenResponse(w, r, err.Error())
		return
	}

	if err := h.bolaoService.RemoveParticipant(r.Context(), id, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BolaoHandler) requireOwnerOrAdmin(r *http.Request, bolaoID int) error {
	requesterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return err
	}
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		return err
	}
	if role.IsAdmin() {
		return nil
	}

	bolao, err := h.bolaoService.GetByID(r.Context(), bolaoID)
	if err != nil {
		return err
	}
	if bolao.OwnerID != requesterID {
		return services.ErrForbiddenOperation
	}
	return nil
}
