// Package api serves the operator station's HTTP surface: the latest robot
// state, telemetry history, the rendered map, and the viewer websocket.
package api

import (
	"net/http"

	"github.com/banshee-data/groundlink/internal/httputil"
	"github.com/banshee-data/groundlink/internal/render"
	"github.com/banshee-data/groundlink/internal/telemetry"
	"github.com/banshee-data/groundlink/internal/version"
	"github.com/banshee-data/groundlink/internal/viewerhub"
)

// defaultHistoryLimit bounds history queries when the client does not ask
// for a specific window.
const defaultHistoryLimit = 200

type Server struct {
	store    *telemetry.Store
	hub      *viewerhub.Hub
	renderer *render.Renderer
	tracker  *StateTracker
}

func NewServer(store *telemetry.Store, hub *viewerhub.Hub, renderer *render.Renderer, tracker *StateTracker) *Server {
	return &Server{
		store:    store,
		hub:      hub,
		renderer: renderer,
		tracker:  tracker,
	}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.stateHandler)
	mux.HandleFunc("/api/battery", s.batteryHandler)
	mux.HandleFunc("/api/states", s.stateHistoryHandler)
	mux.HandleFunc("/api/version", s.versionHandler)
	mux.HandleFunc("/debug/charts/battery", s.batteryChartHandler)
	mux.HandleFunc("/map/latest.png", s.latestMapHandler)
	mux.HandleFunc("/ws", viewerhub.Handler(s.hub))
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Groundlink Station!"))
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, s.tracker.Snapshot())
}

func (s *Server) batteryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	history, err := s.store.BatteryHistory(defaultHistoryLimit)
	if err != nil {
		httputil.InternalServerError(w, "failed to retrieve battery history")
		return
	}
	httputil.WriteJSONOK(w, history)
}

func (s *Server) stateHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	history, err := s.store.StateHistory(defaultHistoryLimit)
	if err != nil {
		httputil.InternalServerError(w, "failed to retrieve state history")
		return
	}
	httputil.WriteJSONOK(w, history)
}

func (s *Server) versionHandler(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	})
}

func (s *Server) latestMapHandler(w http.ResponseWriter, r *http.Request) {
	path := s.renderer.Latest()
	if path == "" {
		httputil.NotFound(w, "no map rendered yet")
		return
	}
	http.ServeFile(w, r, path)
}
