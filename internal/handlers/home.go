package handlers

import (
	"html/template"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/services"
)

type homeView struct {
	Title      string
	Username   string
	LogoutPath string
}

// HomeHandler renders the logged-in landing page
type HomeHandler struct {
	template *template.Template
	title    string
}

// NewHomeHandler creates a new HomeHandler, title becomes the page's document title
func NewHomeHandler(title string) (*HomeHandler, error) {
	tmpl, err := parsePage("index.html")
	if err != nil {
		return nil, err
	}
	return &HomeHandler{template: tmpl, title: title}, nil
}

// ServeHTTP handles GET on the home page, the account comes from RequireSession
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	account, ok := AccountFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	render(w, h.template, http.StatusOK, homeView{Title: h.title, Username: account.Username, LogoutPath: LogoutPath})
}

// LogoutHandler ends the current session and clears the cookie
type LogoutHandler struct {
	accounts      services.AccountService
	secureCookies bool
}

// NewLogoutHandler creates a new LogoutHandler
func NewLogoutHandler(accounts services.AccountService, secureCookies bool) *LogoutHandler {
	return &LogoutHandler{accounts: accounts, secureCookies: secureCookies}
}

// ServeHTTP handles GET and POST on the logout path
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.accounts.EndSession(r.Context(), c.Value); err != nil {
			log.Printf("[WARN] failed to end session: %v", err)
		}
	}
	http.SetCookie(w, sessionCookie("", time.Time{}, h.secureCookies))
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
