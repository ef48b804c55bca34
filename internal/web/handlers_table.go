package web

import (
	"net/http"

	"github.com/JonMunkholm/ArtworkTable/internal/logging"
)

// handleIndex mounts the table: a full page load starts over on page 0 with
// no selection, limit, or pending notices, and retries a failed first fetch.
// A load failure is logged by the table and the empty table still renders.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	if !isPartial(r) && !sessionCreated(ctx) {
		_ = s.service.Mount(ctx, sess)
	}
	renderTable(w, r, sess)
}

// handleTable renders the session's table as it stands. Form posts redirect
// here so their result survives the round trip.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	renderTable(w, r, sessionFromContext(r.Context()))
}

// handlePage loads the page at the zero-based index and renders the table.
// A failed or superseded load is logged by the table and the previous page
// stays on screen.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	idx, err := pathInt(r, "index", maxPageIndex)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	_ = sess.Table.LoadPage(ctx, idx)
	renderTable(w, r, sess)
}

// handleSelection applies the displayed page's checkbox state.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	ids, err := formIDs(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	proposed, err := sess.Table.ProposePage(ids)
	if err != nil {
		s.respondError(w, r, err, selectionStatus(err))
		return
	}

	sess.Push(sess.Table.OnSelectionChange(ctx, proposed))
	respondAction(w, r, sess)
}

// handleToggle flips one row's checkbox.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	id, err := pathInt(r, "id", maxArtworkID)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	proposed, err := sess.Table.ProposeToggle(id)
	if err != nil {
		s.respondError(w, r, err, selectionStatus(err))
		return
	}

	sess.Push(sess.Table.OnSelectionChange(ctx, proposed))
	respondAction(w, r, sess)
}

// handleSelectAll adds every displayed row, like the header checkbox.
func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	sess.Push(sess.Table.OnSelectionChange(ctx, sess.Table.ProposeSelectAll()))
	respondAction(w, r, sess)
}

// handleClearPage removes every displayed row from the selection.
func (s *Server) handleClearPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	sess.Push(sess.Table.OnSelectionChange(ctx, sess.Table.ProposeClearPage()))
	respondAction(w, r, sess)
}

func (s *Server) handleOverlayToggle(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	sess.Table.ToggleOverlay()
	respondAction(w, r, sess)
}

// handleLimit stores the overlay input as the limit without closing it.
func (s *Server) handleLimit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, invalidRequest("form: %v", err), http.StatusBadRequest)
		return
	}

	limit := sess.Table.SetLimitInput(r.PostForm.Get("limit"))
	logging.FromContext(r.Context()).Debug("selection limit set", "limit", limit)
	respondAction(w, r, sess)
}

// handleLimitConfirm applies a posted limit, if any, and closes the overlay.
func (s *Server) handleLimitConfirm(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, invalidRequest("form: %v", err), http.StatusBadRequest)
		return
	}

	if _, ok := r.PostForm["limit"]; ok {
		sess.Table.SetLimitInput(r.PostForm.Get("limit"))
	}
	sess.Table.ConfirmLimit()
	respondAction(w, r, sess)
}

// handleSubmit submits the selection. Emitter failures are already logged
// by the table; the user still sees the success notice.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	notice, _ := sess.Table.Submit(ctx)
	sess.Push(notice)
	respondAction(w, r, sess)
}
