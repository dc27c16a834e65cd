package dashboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
)

type State int

const (
	StateLanding State = iota
	StateSelection
	StateResult
)

func (s State) String() string {
	switch s {
	case StateLanding:
		return "landing"
	case StateSelection:
		return "selection"
	case StateResult:
		return "result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownFlight     = errors.New("unknown flight")
)

// MockSource supplies the mock schedule and its forecasts.
type MockSource interface {
	Schedule(flightNumber string) []flight_data.FlightRecord
	Weather() flight_data.WeatherObservation
	OnTimeScore(w flight_data.WeatherObservation, f flight_data.FlightRecord) float64
}

// Session is one visitor's walk through the pages.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	schedule []flight_data.FlightRecord
	selected *flight_data.FlightRecord
	onTime   float64
}

// Snapshot is a consistent copy of a session for rendering.
type Snapshot struct {
	State    State
	Schedule []flight_data.FlightRecord
	Selected *flight_data.FlightRecord
	OnTime   float64
}

func NewSession(id string) *Session {
	return &Session{ID: id, state: StateLanding}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state, OnTime: s.onTime}
	if s.schedule != nil {
		snap.Schedule = append([]flight_data.FlightRecord(nil), s.schedule...)
	}
	if s.selected != nil {
		rec := *s.selected
		snap.Selected = &rec
	}
	return snap
}

// LookUp shows the mock schedule for a flight number.
func (s *Session) LookUp(schedule []flight_data.FlightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLanding {
		return s.invalid("look up")
	}
	s.schedule = schedule
	s.state = StateSelection
	return nil
}

// Analyze jumps straight to the result of a dataset record.
func (s *Session) Analyze(record flight_data.FlightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLanding {
		return s.invalid("analyze")
	}
	s.selected = &record
	s.onTime = 0
	s.state = StateResult
	return nil
}

// Select picks a flight of the mock schedule and fixes its forecast.
func (s *Session) Select(id int, mock MockSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSelection {
		return s.invalid("select")
	}

	for _, f := range s.schedule {
		if f.ID != id {
			continue
		}
		f.Weather = mock.Weather()
		s.onTime = mock.OnTimeScore(f.Weather, f)
		s.selected = &f
		s.state = StateResult
		return nil
	}

	return fmt.Errorf("%w: %d", ErrUnknownFlight, id)
}

// Back returns to the landing page, dropping the schedule and selection.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLanding {
		return s.invalid("back")
	}
	s.schedule = nil
	s.selected = nil
	s.onTime = 0
	s.state = StateLanding
	return nil
}

func (s *Session) invalid(action string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, s.state)
}

// SessionStore keeps sessions in memory keyed by a random id. Sessions idle
// for longer than idle are dropped, and once max sessions are held the least
// recently seen one makes room for a new one.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	idle     time.Duration
	max      int
	now      func() time.Time
}

type storedSession struct {
	sess     *Session
	lastSeen time.Time
}

const (
	DefaultSessionIdle = 30 * time.Minute
	DefaultMaxSessions = 10000
)

func NewSessionStore(idle time.Duration, max int) *SessionStore {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &SessionStore{
		sessions: make(map[string]*storedSession),
		idle:     idle,
		max:      max,
		now:      time.Now,
	}
}

// Get returns a live session and marks it as seen.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(stored.lastSeen) > s.idle {
		delete(s.sessions, id)
		return nil, false
	}
	stored.lastSeen = now
	return stored.sess, true
}

// Add stores sess, evicting expired sessions and, when the store is full,
// the least recently seen one.
func (s *SessionStore) Add(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)
	if len(s.sessions) >= s.max {
		s.evictOldest()
	}
	s.sessions[sess.ID] = &storedSession{sess: sess, lastSeen: now}
}

func (s *SessionStore) evictIdle(now time.Time) {
	for id, stored := range s.sessions {
		if now.Sub(stored.lastSeen) > s.idle {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, stored := range s.sessions {
		if oldestID == "" || stored.lastSeen.Before(oldest) {
			oldestID, oldest = id, stored.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// newSessionID returns a fresh random session id.
func newSessionID() string {
	return uuid.NewString()
}
