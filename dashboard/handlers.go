package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/kaireichart/flight-delay-predictor/events"
	"go.uber.org/zap"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// visitors without a session see the landing page
	var snap Snapshot
	if sess, ok := s.session(r); ok {
		snap = sess.Snapshot()
	}

	var body templ.Component
	switch snap.State {
	case StateSelection:
		body = Selection(selectionView(snap.Schedule))
	case StateResult:
		v, err := resultView(r.Context(), Analyze(*snap.Selected, snap.OnTime), s.deps.Airports)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		body = Result(v)
	default:
		body = Landing(s.landingView(r.URL.Query().Get("flight")))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Page(body).Render(r.Context(), w); err != nil {
		s.log.Error("render page", zap.String("state", snap.State.String()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) landingView(selected string) LandingView {
	if !s.dataReady() {
		msg := "Dataset is not available."
		if s.deps.LoadErr != nil {
			msg = s.deps.LoadErr.Error()
		}
		return LandingView{Error: msg}
	}

	v := LandingView{Flights: s.flights, DefaultMock: defaultMock}
	if selected == "" && len(s.flights) > 0 {
		selected = s.flights[0]
	}
	v.Selected = selected
	if selected != "" {
		v.Routes = s.deps.Resolver.FindRoutes(selected)
	}
	return v
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	if !s.dataReady() {
		http.Error(w, "Dataset is not available", http.StatusServiceUnavailable)
		return
	}

	flight := strings.TrimSpace(r.URL.Query().Get("flight"))
	if flight == "" {
		http.Error(w, "Missing flight", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RouteOptions(s.deps.Resolver.FindRoutes(flight)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.dataReady() {
		http.Error(w, "Dataset is not available", http.StatusServiceUnavailable)
		return
	}

	flight := strings.TrimSpace(r.FormValue("flight"))
	row, err := strconv.Atoi(r.FormValue("route"))
	if flight == "" || err != nil {
		http.Error(w, "Missing or invalid flight and route", http.StatusBadRequest)
		return
	}

	resolver := s.deps.Resolver
	if row < 0 || row >= resolver.Dataset.Len() || resolver.FlightNumber(row) != flight {
		http.Error(w, "Route does not belong to flight", http.StatusBadRequest)
		return
	}

	record, err := resolver.BuildRecord(row)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, keep := s.actionSession(r)
	if err := sess.Analyze(record); err != nil {
		s.transitionError(w, err)
		return
	}
	keep(w)

	events.LogEvent(events.Event{
		Type:      events.TypeAnalyze,
		Flight:    record.FlightNumber,
		Detail:    resolver.RouteLabel(row),
		Timestamp: time.Now(),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.FormValue("flight_number"))
	if number == "" {
		http.Error(w, "Missing flight number", http.StatusBadRequest)
		return
	}
	if s.deps.Mock == nil {
		http.Error(w, "Mock schedule is not available", http.StatusServiceUnavailable)
		return
	}

	sess, keep := s.actionSession(r)
	if err := sess.LookUp(s.deps.Mock.Schedule(number)); err != nil {
		s.transitionError(w, err)
		return
	}
	keep(w)

	events.LogEvent(events.Event{Type: events.TypeLookup, Flight: strings.ToUpper(number), Timestamp: time.Now()})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Missing or invalid id", http.StatusBadRequest)
		return
	}
	if s.deps.Mock == nil {
		http.Error(w, "Mock schedule is not available", http.StatusServiceUnavailable)
		return
	}

	sess, keep := s.actionSession(r)
	if err := sess.Select(id, s.deps.Mock); err != nil {
		s.transitionError(w, err)
		return
	}
	keep(w)

	snap := sess.Snapshot()
	events.LogEvent(events.Event{
		Type:      events.TypeSelect,
		Flight:    snap.Selected.FlightNumber,
		Detail:    strconv.Itoa(id),
		Timestamp: time.Now(),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess, keep := s.actionSession(r)
	if err := sess.Back(); err != nil {
		s.transitionError(w, err)
		return
	}
	keep(w)

	events.LogEvent(events.Event{Type: events.TypeBack, Timestamp: time.Now()})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) transitionError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrUnknownFlight) {
		s.log.Debug("rejected action", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

type health struct {
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	DatasetRows int    `json:"dataset_rows"`
	Flights     int    `json:"flights"`
	Sessions    int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := health{Status: "ok", Flights: len(s.flights), Sessions: s.sessions.Len()}
	if s.dataReady() {
		h.DatasetRows = s.deps.Resolver.Dataset.Len()
	} else {
		h.Status = "degraded"
		if s.deps.LoadErr != nil {
			h.Error = s.deps.LoadErr.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h); err != nil {
		http.Error(w, fmt.Sprintf("encode health: %v", err), http.StatusInternalServerError)
		return
	}
}
