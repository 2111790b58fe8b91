package surfacenav

import (
	"net/http"
)

type healthResponse struct {
	Status                  string   `json:"status"`
	Sessions                int      `json:"sessions"`
	LatestFlightStatusEpoch int64    `json:"latest_flight_status_epoch"`
	FlightStatusError       string   `json:"flight_status_error,omitempty"`
	Routes                  []string `json:"routes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Sessions: s.app.Sessions.Len(),
		Routes:   s.app.Provider.Table().Names(),
	}
	if p := s.app.Poller; p != nil {
		if t := p.LastFetch(); !t.IsZero() {
			resp.LatestFlightStatusEpoch = t.Unix()
		}
		if err := p.LastError(); err != nil {
			resp.FlightStatusError = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
