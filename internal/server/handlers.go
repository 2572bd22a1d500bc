package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/llehouerou/qss/internal/action"
	"github.com/llehouerou/qss/internal/gesture"
	"github.com/llehouerou/qss/internal/session"
)

// staleEpisodeTimeout bounds how long an unterminated gesture episode
// can wait for its next event before being discarded.
const staleEpisodeTimeout = 10 * time.Second

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	st := sess.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"speed":         st.Speed,
		"repeat":        st.Repeat,
		"shuffle":       st.Shuffle,
		"always_on_top": st.AlwaysOnTop,
	})
}

func (s *Server) handleImages(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	seq := s.manager.Sequence()
	order := sess.Order()
	images := make([]map[string]any, 0, len(order))
	for i, real := range order {
		path := seq.Path(real)
		images = append(images, map[string]any{
			"index": i,
			"name":  filepath.Base(path),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"images": images,
		"total":  len(order),
	})
}

// handleImage serves the file at a session-order position.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image index")
		return
	}
	order := sess.Order()
	if idx < 0 || idx >= len(order) {
		writeError(w, http.StatusNotFound, "image index out of range")
		return
	}
	path := s.manager.Sequence().Path(order[idx])
	if path == "" {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	var actions []map[string]string
	for _, a := range s.dispatcher.Registry().List(action.Web) {
		actions = append(actions, map[string]string{
			"name":        a.Name(),
			"description": a.Description(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

type controlRequest struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "missing action")
		return
	}
	s.execute(w, sess, req.Action, req.Params)
}

type keyRequest struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

// handleKey resolves a hotkey and executes its action. An unbound key or
// a binding whose action cannot run in the web context is an ordinary
// no-action outcome, not an error.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := s.hotkeys.Resolve(req.Key, req.Modifiers)
	if name == "" {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "matched": false})
		return
	}
	result, err := s.dispatcher.Execute(name, action.Web, sess, nil)
	if errors.Is(err, action.ErrUnknownAction) || errors.Is(err, action.ErrNotApplicable) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "matched": false, "action": name})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "action": name, "error": err.Error()})
		return
	}
	writeResult(w, name, result)
}

type touchPoint struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID int     `json:"id"`
}

type touchEvent struct {
	Type   string       `json:"type"` // "start", "move", "end"
	Points []touchPoint `json:"points"`
	TimeMs int64        `json:"time_ms"`
}

type touchRequest struct {
	Events []touchEvent `json:"events"`
}

// handleTouch feeds raw touch samples through the session's gesture
// detector and executes whatever actions the classified gestures map to.
func (s *Server) handleTouch(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req touchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var gestures []gesture.Gesture
	_ = sess.Exec(func() error {
		det := sess.Detector()
		if len(req.Events) > 0 {
			// A lost touch-end must not leak into this batch.
			det.ExpireIfIdle(time.UnixMilli(req.Events[0].TimeMs), staleEpisodeTimeout)
		}
		for _, ev := range req.Events {
			typ, ok := eventType(ev.Type)
			if !ok {
				continue
			}
			points := make([]gesture.Point, len(ev.Points))
			for i, p := range ev.Points {
				points[i] = gesture.Point{X: p.X, Y: p.Y, ID: p.ID}
			}
			g := det.Process(gesture.Event{
				Type:   typ,
				Points: points,
				Time:   time.UnixMilli(ev.TimeMs),
			})
			if g != gesture.None {
				gestures = append(gestures, g)
			}
		}
		return nil
	})

	results := make([]map[string]any, 0, len(gestures))
	for _, g := range gestures {
		name := s.gestures.ResolveToken(string(g))
		if name == "" {
			results = append(results, map[string]any{"gesture": string(g), "matched": false})
			continue
		}
		result, err := s.dispatcher.Execute(name, action.Web, sess, nil)
		switch {
		case errors.Is(err, action.ErrUnknownAction) || errors.Is(err, action.ErrNotApplicable):
			results = append(results, map[string]any{"gesture": string(g), "matched": false, "action": name})
		case err != nil:
			results = append(results, map[string]any{"gesture": string(g), "action": name, "error": err.Error()})
		default:
			entry := map[string]any{"gesture": string(g), "action": name}
			for k, v := range result {
				entry[k] = v
			}
			results = append(results, entry)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})
}

func eventType(s string) (gesture.EventType, bool) {
	switch s {
	case "start":
		return gesture.Start, true
	case "move":
		return gesture.Move, true
	case "end":
		return gesture.End, true
	default:
		return 0, false
	}
}

// execute runs an action by name and writes the merged result.
func (s *Server) execute(w http.ResponseWriter, sess *session.Session, name string, params map[string]any) {
	result, err := s.dispatcher.Execute(name, action.Web, sess, action.Params(params))
	if err != nil {
		status := http.StatusOK
		if errors.Is(err, action.ErrUnknownAction) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeResult(w, name, result)
}

func writeResult(w http.ResponseWriter, name string, result action.Result) {
	out := map[string]any{"success": true, "action": name}
	for k, v := range result {
		out[k] = v
	}
	writeJSON(w, http.StatusOK, out)
}
