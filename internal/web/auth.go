package web

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdeno/internal/store"
)

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Register"})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Register",
			Error: "Enter an email address and a password.",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Register",
			Error: "Registration failed, please try again.",
		})
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, email, string(hash))
	if errors.Is(err, store.ErrDuplicateEmail) {
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Register",
			Error: "An account with that email already exists.",
		})
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Register",
			Error: "Registration failed, please try again.",
		})
		return
	}

	slog.Info("account registered", "user", user.Email)
	s.Templates.Render(w, "login.html", &PageData{
		Title:   "Log in",
		Success: "Account created, you can log in now.",
	})
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login. Unknown emails and wrong passwords produce
// the same generic message so the form can't be used to enumerate accounts.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Enter an email address and a password.",
		})
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil || user == nil {
		if err != nil {
			slog.Error("failed to look up user", "error", err)
		}
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid email or password.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "user", email, "remote", r.RemoteAddr)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid email or password.",
		})
		return
	}

	token, err := store.CreateSession(r.Context(), s.DB, user.ID)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed, please try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(store.SessionLifetime.Seconds()),
	})

	slog.Info("user logged in", "user", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout. Destroying an already-destroyed session is
// harmless, so logging out always succeeds.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if err := store.DeleteSession(r.Context(), s.DB, cookie.Value); err != nil {
			slog.Error("failed to delete session", "error", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
