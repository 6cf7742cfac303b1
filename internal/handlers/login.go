package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/services"
)

type loginView struct {
	Action     string
	SignupPath string
	Username   string
	Registered bool
	Error      string
}

// LoginHandler renders the login form and starts web sessions
type LoginHandler struct {
	template      *template.Template
	accounts      services.AccountService
	secureCookies bool
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(accounts services.AccountService, secureCookies bool) (*LoginHandler, error) {
	tmpl, err := parsePage("login.html")
	if err != nil {
		return nil, err
	}
	return &LoginHandler{template: tmpl, accounts: accounts, secureCookies: secureCookies}, nil
}

// ServeHTTP handles GET and POST on the login page
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := loginView{Action: LoginPath, SignupPath: SignupPath}

	switch r.Method {
	case http.MethodGet:
		if h.hasSession(r) {
			http.Redirect(w, r, HomePath, http.StatusSeeOther)
			return
		}
		view.Registered = r.URL.Query().Get("registered") == "1"
		render(w, h.template, http.StatusOK, view)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			view.Error = "Invalid form submission"
			render(w, h.template, http.StatusBadRequest, view)
			return
		}
		username := strings.TrimSpace(r.PostFormValue("username"))
		view.Username = username

		account, err := h.accounts.Authenticate(r.Context(), username, r.PostFormValue("password"))
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("[INFO] rejected login for %q", username)
			view.Error = "Invalid username or password"
			render(w, h.template, http.StatusUnauthorized, view)
			return
		}
		if err != nil {
			log.Printf("[ERROR] login for %q failed: %v", username, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		session, err := h.accounts.StartSession(r.Context(), account.ID)
		if err != nil {
			log.Printf("[ERROR] failed to start session for %s: %v", account.ID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, sessionCookie(session.Token, session.ExpiresAt, h.secureCookies))
		log.Printf("[INFO] %s logged in", account.Username)
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// hasSession reports whether the request carries a live session
func (h *LoginHandler) hasSession(r *http.Request) bool {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	_, err = h.accounts.ResolveSession(r.Context(), c.Value)
	return err == nil
}
