package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/najdeno/internal/upload"
	webembed "github.com/erazemk/najdeno/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, uploads *upload.Relay) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Uploads:   uploads,
	}

	mux := http.NewServeMux()

	// Static assets and stored photos.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /items", s.ItemsPage)
	mux.HandleFunc("GET /items/{id}", s.ItemDetailPage)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Reporting an item requires a session.
	mux.Handle("GET /items/new", RequireUser(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("POST /items/new", RequireUser(http.HandlerFunc(s.ItemCreateSubmit)))

	// Every page sees the session user (public pages show login state).
	return SessionMiddleware(db)(mux), nil
}
