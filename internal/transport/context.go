package transport

import (
	"net/http"

	"glamour-be/internal/utils"

	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// sessionOwner identifies the browsing session a cart belongs to: the
// user id when authenticated, otherwise a cookie-scoped session id
// minted on first contact.
func sessionOwner(w http.ResponseWriter, r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return userID
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
