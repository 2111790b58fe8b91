package surfacenav

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/surface-nav/render"
	"github.com/theoremus-urban-solutions/surface-nav/session"
)

func (s *Server) handleFlight(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		writeError(w, &QueryError{Msg: "You must provide a code."})
		return
	}
	if s.app.Poller == nil {
		writeStatus(w, http.StatusNotFound, "No flight status source is configured.")
		return
	}
	st := s.app.Poller.Latest(code)
	if st == nil {
		writeStatus(w, http.StatusNotFound, "No flight status for "+code+".")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, err := parseRouteRequest(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.app.Resolve(req)
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Route.Degenerate() {
		writeStatus(w, http.StatusNotFound, "No route for "+req.Code+".")
		return
	}

	f := res.Route.Feature()
	f.Properties["legs"] = res.Plan.Legs
	f.Properties["final"] = res.Plan.Final
	w.Header().Set("Content-Type", "application/geo+json")
	writeJSON(w, http.StatusOK, f)
}

type navigationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code,omitempty"`
	Route     string    `json:"route,omitempty"`
	RouteM    float64   `json:"route_m"`
	Frame     int       `json:"frame"`
	MaxFrame  int       `json:"max_frame"`
	Finished  bool      `json:"finished"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Server) describe(sess *session.Session) navigationResponse {
	return navigationResponse{
		ID:        sess.ID,
		Code:      sess.Code,
		Route:     sess.Route.Name(),
		RouteM:    sess.Route.Length(),
		Frame:     sess.Frame(),
		MaxFrame:  s.app.Sim.Config().MaxFrame,
		Finished:  sess.Finished(),
		StartedAt: sess.StartedAt,
	}
}

func (s *Server) handleListNavigation(w http.ResponseWriter, r *http.Request) {
	out := []navigationResponse{}
	for _, sess := range s.app.Sessions.List() {
		out = append(out, s.describe(sess))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStartNavigation(w http.ResponseWriter, r *http.Request) {
	req, err := parseRouteRequest(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.app.Resolve(req)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.app.Sessions.StartRoute(res.Code, res.Route, res.Plan)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/navigation/"+sess.ID+"/pose")
	writeJSON(w, http.StatusCreated, s.describe(sess))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.app.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

// frame renders the session at ?frame= when given, else at its clock.
func (s *Server) frame(w http.ResponseWriter, r *http.Request) (render.Frame, bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return render.Frame{}, false
	}
	n, err := parseNonNegativeInt(r.URL.Query().Get("frame"))
	if err != nil {
		writeError(w, err)
		return render.Frame{}, false
	}
	if n < 0 {
		return sess.Current(), true
	}
	return sess.Render(n, time.Now().UTC()), true
}

func (s *Server) handlePose(w http.ResponseWriter, r *http.Request) {
	f, ok := s.frame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	f, ok := s.frame(w, r)
	if !ok {
		return
	}
	data, err := render.MarshalFeed(f)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	_, _ = w.Write(data)
}

func (s *Server) handleStopNavigation(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Sessions.Stop(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
