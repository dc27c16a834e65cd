package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kaireichart/flight-delay-predictor/events"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/kaireichart/flight-delay-predictor/risk"
	"go.uber.org/zap"
)

// LiveForecast is one message of the /live stream: a freshly rolled mock
// forecast for the selected flight.
type LiveForecast struct {
	Flight    string                         `json:"flight"`
	Score     float64                        `json:"score"`
	OnTime    float64                        `json:"on_time"`
	Band      risk.Band                      `json:"band"`
	Weather   flight_data.WeatherObservation `json:"weather"`
	Timestamp time.Time                      `json:"timestamp"`
}

func (s *Server) forecast(rec flight_data.FlightRecord) LiveForecast {
	w := s.deps.Mock.Weather()
	score := risk.Score(w, rec)
	return LiveForecast{
		Flight:    rec.FlightNumber,
		Score:     score,
		OnTime:    s.deps.Mock.OnTimeScore(w, rec),
		Band:      risk.Band5(score),
		Weather:   w,
		Timestamp: time.Now(),
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}
	snap := sess.Snapshot()
	if snap.State != StateResult || snap.Selected == nil {
		http.Error(w, "No flight selected", http.StatusBadRequest)
		return
	}
	if s.deps.Mock == nil {
		http.Error(w, "Mock schedule is not available", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	rec := *snap.Selected
	events.LogEvent(events.Event{Type: events.TypeLiveOpened, Flight: rec.FlightNumber, Timestamp: time.Now()})
	defer func() {
		events.LogEvent(events.Event{Type: events.TypeLiveClosed, Flight: rec.FlightNumber, Timestamp: time.Now()})
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// the reader only notices the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.stream(ctx, conn, rec)
}

func (s *Server) stream(ctx context.Context, conn *websocket.Conn, rec flight_data.FlightRecord) {
	ticker := time.NewTicker(s.deps.LiveInterval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(s.forecast(rec)); err != nil {
			s.log.Debug("live stream closed", zap.Error(err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
