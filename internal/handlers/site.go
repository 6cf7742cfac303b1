// Package handlers serves the automation practice site: signup, login and the protected home page.
package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
)

// Site paths
const (
	SignupPath = "/automation/signup.html"
	LoginPath  = "/automation/login.html"
	HomePath   = "/automation/index.html"
	LogoutPath = "/automation/logout"
	StylePath  = "/automation/site.css"
)

// SessionCookieName is the cookie carrying the web session token
const SessionCookieName = "practice_session"

//go:embed templates
var templateFS embed.FS

// parsePage parses a single embedded page template
func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return tmpl, nil
}

// render executes tmpl into a buffer so a template error never leaves a half-written page
func render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", tmpl.Name(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write %s: %v", tmpl.Name(), err)
	}
}

// sessionCookie builds the cookie for token, a zero expiry clears it
func sessionCookie(token string, expires time.Time, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if expires.IsZero() {
		c.MaxAge = -1
		return c
	}
	c.Expires = expires
	return c
}

// StyleHandler serves the site stylesheet
func StyleHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, templateFS, "templates/site.css")
	})
}
