package web

// JSON mirrors of the table actions. Every response carries the table state
// and, when an action produced one, the notice to show.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/JonMunkholm/ArtworkTable/internal/logging"
)

// StateResponse is the body of every /api response.
type StateResponse struct {
	State  core.Snapshot  `json:"state"`
	Notice *core.Notice   `json:"notice,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// SelectionRequest proposes a full selection by artwork ID.
type SelectionRequest struct {
	IDs []int `json:"ids"`
}

// LimitRequest carries raw overlay input. Confirm also closes the overlay.
type LimitRequest struct {
	Input   string `json:"input"`
	Confirm bool   `json:"confirm,omitempty"`
}

func stateResponse(sess *core.Session, notice core.Notice) StateResponse {
	resp := StateResponse{State: sess.Table.Snapshot()}
	if !notice.IsZero() {
		resp.Notice = &notice
	}
	return resp
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return invalidRequest("json body: %v", err)
	}
	return nil
}

func (s *Server) handleAPIState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stateResponse(sessionFromContext(r.Context()), core.Notice{}))
}

// handleAPIPage loads a page. Load failures are reported in the error field
// while the state still shows the previous page; superseded loads are not
// errors for the caller.
func (s *Server) handleAPIPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	idx, err := pathInt(r, "index", maxPageIndex)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	resp := StateResponse{}
	if err := sess.Table.LoadPage(ctx, idx); err != nil && !errors.Is(err, core.ErrStaleResponse) {
		resp.Error = newErrorResponse(core.MapError(err))
	}
	resp.State = sess.Table.Snapshot()
	writeJSON(w, resp)
}

// handleAPISelection proposes a whole selection. IDs must be on the displayed
// page or already selected.
func (s *Server) handleAPISelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	var req SelectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	proposed, err := sess.Table.ResolveIDs(req.IDs)
	if err != nil {
		s.respondError(w, r, err, selectionStatus(err))
		return
	}

	notice := sess.Table.OnSelectionChange(ctx, proposed)
	writeJSON(w, stateResponse(sess, notice))
}

func (s *Server) handleAPILimit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	var req LimitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	sess.Table.SetLimitInput(req.Input)
	if req.Confirm {
		sess.Table.ConfirmLimit()
	}
	writeJSON(w, stateResponse(sess, core.Notice{}))
}

func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	notice, err := sess.Table.Submit(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("submission accepted with emitter errors", "error", err)
	}
	writeJSON(w, stateResponse(sess, notice))
}
