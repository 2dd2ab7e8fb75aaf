package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"gridbowl/internal/actions"
	"gridbowl/internal/dice"
	"gridbowl/internal/engine"
	"gridbowl/internal/metrics"
	"gridbowl/internal/state"
	"gridbowl/internal/validate"
)

type handlers struct {
	hub *Hub
	log zerolog.Logger
}

// resolveRequest is the wire shape every mutating endpoint accepts: the
// full current state plus the action to attempt. The server is
// intentionally stateless between calls (spec §9 "pure core") — the
// caller owns persistence of the returned state.
type resolveRequest struct {
	State  *state.GameState `json:"state"`
	Action actions.Type     `json:"action"`
	Params actions.Params   `json:"params"`
	Seed   int64            `json:"seed"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": errors.Wrap(err, "decoding request body").Error(),
		})
		return false
	}
	return true
}

func (h *handlers) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.State == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": errors.New("InvalidArgument: state is required").Error(),
		})
		return
	}
	errs := validate.Validate(req.State, req.Action, req.Params)
	writeJSON(w, http.StatusOK, map[string]interface{}{"errors": errs})
}

func (h *handlers) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.State == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": errors.New("InvalidArgument: state is required").Error(),
		})
		return
	}

	if errs := validate.Validate(req.State, req.Action, req.Params); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": errs})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := dice.NewRandom(seed)

	start := time.Now()
	next, log := engine.Resolve(req.State, src, req.Action, req.Params)

	eventTypes := make([]string, len(log))
	for i, e := range log {
		eventTypes[i] = string(e.Type)
	}
	metrics.RecordResolve(string(req.Action), time.Since(start).Seconds(), next.TurnoverPending, next.Phase == state.PhaseTouchdown, eventTypes)

	if h.hub != nil {
		h.hub.Broadcast("resolve", map[string]interface{}{"events": log})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"state": next, "events": log})
}

func (h *handlers) handleAvailableActions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State *state.GameState `json:"state"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.State == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": errors.New("InvalidArgument: state is required").Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, validate.AvailableActions(req.State))
}

func (h *handlers) handleMoveTargets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State    *state.GameState `json:"state"`
		PlayerID int              `json:"playerId"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.State == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": errors.New("InvalidArgument: state is required").Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, validate.ValidMoveTargets(req.State, req.PlayerID))
}

func (h *handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		http.Error(w, "streaming disabled", http.StatusServiceUnavailable)
		return
	}
	h.hub.HandleWebSocket(w, r)
}
