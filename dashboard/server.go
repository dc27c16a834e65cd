package dashboard

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"go.uber.org/zap"
)

const (
	sessionCookie = "flight_session"
	defaultMock   = "WN1492"
)

// Deps are the inputs the dashboard serves. Resolver is nil when LoadErr
// reports why the dataset or encoders could not be loaded.
type Deps struct {
	Resolver     *flight_data.Resolver
	LoadErr      error
	Airports     flight_data.AirportNames
	Mock         MockSource
	Sampling     flight_data.SamplingPolicy
	LiveInterval time.Duration
	SessionIdle  time.Duration
	MaxSessions  int
}

type Server struct {
	log      *zap.Logger
	deps     Deps
	sessions *SessionStore
	flights  []string
	upgrader websocket.Upgrader
}

func New(log *zap.Logger, deps Deps) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if deps.LiveInterval <= 0 {
		deps.LiveInterval = 3 * time.Second
	}

	s := &Server{
		log:      log.With(zap.String("component", "dashboard")),
		deps:     deps,
		sessions: NewSessionStore(deps.SessionIdle, deps.MaxSessions),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	if deps.Resolver != nil && deps.LoadErr == nil {
		s.flights = deps.Resolver.SampleFlights(deps.Sampling)
		s.log.Info("sampled flights", zap.Int("count", len(s.flights)))
	}

	return s
}

func (s *Server) SetupHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /routes", s.handleRoutes)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /lookup", s.handleLookup)
	mux.HandleFunc("POST /select", s.handleSelect)
	mux.HandleFunc("POST /back", s.handleBack)
	mux.HandleFunc("GET /export.xlsx", s.handleExport)
	mux.HandleFunc("GET /live", s.handleLive)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

// session returns the caller's stored session. Callers without a known
// cookie get none; a session is only kept once an action succeeds.
func (s *Server) session(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(c.Value)
}

// actionSession returns the caller's session, or a fresh unsaved one on the
// landing page. keep must be called once the action has succeeded.
func (s *Server) actionSession(r *http.Request) (sess *Session, keep func(http.ResponseWriter)) {
	if sess, ok := s.session(r); ok {
		return sess, func(http.ResponseWriter) {}
	}

	sess = NewSession(newSessionID())
	return sess, func(w http.ResponseWriter) {
		s.sessions.Add(sess)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (s *Server) dataReady() bool {
	return s.deps.Resolver != nil && s.deps.LoadErr == nil
}
