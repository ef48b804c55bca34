package web

// This file contains shared utilities and helper functions used across handlers.

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/JonMunkholm/ArtworkTable/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// maxFormBytes bounds form and JSON request bodies.
const maxFormBytes = 64 << 10

// Path parameter bounds. Page arithmetic (index+1, index*PageSize) stays
// within int32.
const (
	maxPageIndex = math.MaxInt32 / core.PageSize
	maxArtworkID = math.MaxInt32
)

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// pathInt parses a chi URL parameter as an integer in [0, upper].
func pathInt(r *http.Request, name string, upper int) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > upper {
		return 0, invalidRequest("%s %q", name, raw)
	}
	return n, nil
}

// formIDs returns the artwork IDs posted as repeated "id" fields.
func formIDs(w http.ResponseWriter, r *http.Request) ([]int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, invalidRequest("form: %v", err)
	}

	values := r.PostForm["id"]
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, invalidRequest("artwork id %q", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// selectionStatus maps proposal errors to HTTP status codes.
func selectionStatus(err error) int {
	if errors.Is(err, core.ErrUnknownArtwork) || errors.Is(err, errInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// view builds the render model for a session, draining its notices.
func view(sess *core.Session) templates.TableView {
	return templates.TableView{
		State:   sess.Table.Snapshot(),
		Notices: sess.TakeNotices(),
	}
}

// renderTable writes the table for sess: the panel fragment for in-page
// requests, the full document otherwise.
func renderTable(w http.ResponseWriter, r *http.Request, sess *core.Session) {
	w.Header().Set("Cache-Control", "no-store")
	if isPartial(r) {
		templ.Handler(templates.TablePanel(view(sess))).ServeHTTP(w, r)
		return
	}
	templ.Handler(templates.Page(view(sess))).ServeHTTP(w, r)
}

// respondAction finishes a state-changing form post. In-page requests get
// the updated panel; plain form posts redirect to /table so a reload neither
// repeats the action nor remounts the table. Queued notices show on the next
// render.
func respondAction(w http.ResponseWriter, r *http.Request, sess *core.Session) {
	if isPartial(r) {
		renderTable(w, r, sess)
		return
	}
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}
