package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "home.html", &PageData{
		Title: "Lost and found",
		User:  GetWebUser(r.Context()),
	})
}

// ItemsPage handles GET /items with an optional ?type= filter.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("type")
	if filter != "" {
		if _, err := model.ParseType(filter); err != nil {
			// Malformed filter values fall back to the unfiltered listing.
			filter = ""
		}
	}

	items, err := store.ListItems(r.Context(), s.DB, filter)
	if err != nil {
		// Degrade to an empty listing so the page still renders.
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items  []model.Item
		Filter string
	}{
		PageData: PageData{Title: "Reported items", User: GetWebUser(r.Context())},
		Items:    items,
		Filter:   filter,
	})
}

// ItemDetailPage handles GET /items/{id}. Missing items route back to the
// listing instead of erroring; a stale link is a normal outcome.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}
	if item == nil {
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	matches, err := store.FindMatches(r.Context(), s.DB, item)
	if err != nil {
		// Degrade to no matches so the detail page still renders.
		slog.Error("failed to find matches", "error", err)
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item    *model.Item
		Matches []model.Item
	}{
		PageData: PageData{Title: item.Name, User: GetWebUser(r.Context())},
		Item:     item,
		Matches:  matches,
	})
}

// ItemNewPage handles GET /items/new (session required).
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	s.renderItemForm(w, r, "")
}

// ItemCreateSubmit handles POST /items/new (session required).
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		s.renderItemForm(w, r, "Photo too large (5 MB maximum).")
		return
	}

	name := r.FormValue("name")
	category := r.FormValue("category")
	itemType, err := model.ParseType(r.FormValue("type"))
	if name == "" || category == "" || err != nil {
		s.renderItemForm(w, r, "Name, category and a valid report type are required.")
		return
	}

	// The photo is optional; only a present-but-unreadable upload is an error.
	imagePath := ""
	file, _, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		imagePath, err = s.Uploads.Save(file)
		if err != nil {
			s.renderItemForm(w, r, err.Error())
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		s.renderItemForm(w, r, "Could not read the uploaded photo.")
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, store.ItemParams{
		Name:        name,
		Type:        itemType,
		Category:    category,
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Description: r.FormValue("description"),
		Image:       imagePath,
	})
	if err != nil {
		// The failure is logged but the user is sent back to the listing
		// either way; see DESIGN.md before changing this.
		slog.Error("failed to create item", "error", err)
	} else {
		slog.Info("item reported", "user", user.Email, "item", item.Name, "type", item.Type)
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

func (s *Server) renderItemForm(w http.ResponseWriter, r *http.Request, errMsg string) {
	s.Templates.Render(w, "item_new.html", &PageData{
		Title: "Report an item",
		User:  GetWebUser(r.Context()),
		Error: errMsg,
	})
}
