package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/services"
)

type ctxKey struct{}

// AccountFromContext returns the account stored by RequireSession
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(ctxKey{}).(*models.Account)
	return account, ok && account != nil
}

// RequireSession redirects requests without a live session cookie to the login page
func RequireSession(accounts services.AccountService, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookieName)
			if err != nil || c.Value == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			account, err := accounts.ResolveSession(r.Context(), c.Value)
			switch {
			case errors.Is(err, services.ErrNoSession), errors.Is(err, services.ErrSessionExpired):
				http.SetCookie(w, sessionCookie("", time.Time{}, secureCookies))
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			case err != nil:
				log.Printf("[ERROR] failed to resolve session: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, account)))
		})
	}
}
