package transport

import (
	"net/http"

	"glamour-be/internal/user"
	"glamour-be/internal/utils"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteJSONError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	switch result := h.UserSvc.Register(r.Context(), req.Name, req.Email, req.Password).(type) {
	case user.AuthSuccess:
		writeJSON(w, http.StatusCreated, authResponse{Token: result.Token, User: result.User})
	case user.AuthFailure:
		writeError(w, result.Err)
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch result := h.UserSvc.Login(r.Context(), req.Email, req.Password).(type) {
	case user.AuthSuccess:
		writeJSON(w, http.StatusOK, authResponse{Token: result.Token, User: result.User})
	case user.AuthFailure:
		writeError(w, result.Err)
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	u, err := h.UserSvc.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
