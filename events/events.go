package events

import (
	"sync"

	"go.uber.org/zap"
)

// MaxRecent is how many events GetEvents keeps.
const MaxRecent = 50

var (
	mutex  = &sync.Mutex{}
	events []Event
	logger = zap.NewNop()
)

func Init(log *zap.Logger) {
	mutex.Lock()
	defer mutex.Unlock()

	if log != nil {
		logger = log.With(zap.String("component", "events"))
	}
	events = nil
}

func LogEvent(event Event) {
	mutex.Lock()
	defer mutex.Unlock()

	events = append(events, event)
	if len(events) > MaxRecent {
		events = append([]Event(nil), events[len(events)-MaxRecent:]...)
	}

	logger.Info("dashboard event",
		zap.String("type", event.Type),
		zap.String("flight", event.Flight),
		zap.String("detail", event.Detail),
		zap.Time("timestamp", event.Timestamp),
	)
}

// GetEvents returns the recent events, oldest first.
func GetEvents() []Event {
	mutex.Lock()
	defer mutex.Unlock()

	out := make([]Event, len(events))
	copy(out, events)
	return out
}
