package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/services"
)

// signupView is the data rendered into the signup page
type signupView struct {
	Action    string
	LoginPath string
	Username  string
	Email     string
	Error     string
}

// SignupHandler renders and processes the registration form
type SignupHandler struct {
	template *template.Template
	accounts services.AccountService
}

// NewSignupHandler creates a new SignupHandler
func NewSignupHandler(accounts services.AccountService) (*SignupHandler, error) {
	tmpl, err := parsePage("signup.html")
	if err != nil {
		return nil, err
	}
	return &SignupHandler{template: tmpl, accounts: accounts}, nil
}

// ServeHTTP handles GET and POST on the signup page
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := signupView{Action: SignupPath, LoginPath: LoginPath}

	switch r.Method {
	case http.MethodGet:
		render(w, h.template, http.StatusOK, view)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			view.Error = "Invalid form submission"
			render(w, h.template, http.StatusBadRequest, view)
			return
		}
		req := models.SignupRequest{
			Username:        strings.TrimSpace(r.PostFormValue("username")),
			Email:           strings.TrimSpace(r.PostFormValue("email")),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}
		view.Username, view.Email = req.Username, req.Email

		account, err := h.accounts.SignUp(r.Context(), req)
		if err != nil {
			if msg, ok := signupErrorMessage(err); ok {
				view.Error = msg
				render(w, h.template, http.StatusUnprocessableEntity, view)
				return
			}
			log.Printf("[ERROR] signup for %q failed: %v", req.Username, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Printf("[INFO] registered account %s (%s)", account.Username, account.ID)
		http.Redirect(w, r, LoginPath+"?registered=1", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// signupErrorMessage maps user-facing signup errors to a message
func signupErrorMessage(err error) (string, bool) {
	for _, known := range []error{
		services.ErrAccountExists,
		models.ErrInvalidUsername,
		models.ErrInvalidEmail,
		models.ErrPasswordTooShort,
		models.ErrPasswordMismatch,
	} {
		if errors.Is(err, known) {
			return known.Error(), true
		}
	}
	return "", false
}
