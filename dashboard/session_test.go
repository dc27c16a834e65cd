package dashboard

import (
	"testing"
	"time"

	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_MockFlow(t *testing.T) {
	sess := NewSession("s")
	mock := calmMock()

	require.NoError(t, sess.LookUp(mock.Schedule("WN1492")))
	assert.Equal(t, StateSelection, sess.Snapshot().State)

	require.NoError(t, sess.Select(2, mock))
	snap := sess.Snapshot()
	assert.Equal(t, StateResult, snap.State)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "MDW", snap.Selected.Origin)
	assert.Equal(t, mock.weather, snap.Selected.Weather)
	assert.Equal(t, 97.5, snap.OnTime)

	require.NoError(t, sess.Back())
	snap = sess.Snapshot()
	assert.Equal(t, StateLanding, snap.State)
	assert.Nil(t, snap.Selected)
	assert.Nil(t, snap.Schedule)
}

func TestSession_AnalyzeAndBack(t *testing.T) {
	sess := NewSession("s")

	require.NoError(t, sess.Analyze(flight_data.FlightRecord{FlightNumber: "WN1"}))
	assert.Equal(t, StateResult, sess.Snapshot().State)

	require.NoError(t, sess.Back())
	assert.Equal(t, StateLanding, sess.Snapshot().State)
}

func TestSession_SelectionBack(t *testing.T) {
	sess := NewSession("s")
	require.NoError(t, sess.LookUp(calmMock().Schedule("WN1")))

	require.NoError(t, sess.Back())
	assert.Equal(t, StateLanding, sess.Snapshot().State)
}

func TestSession_RejectsInvalidTransitions(t *testing.T) {
	mock := calmMock()

	landing := NewSession("a")
	assert.ErrorIs(t, landing.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, landing.Select(1, mock), ErrInvalidTransition)

	selection := NewSession("b")
	require.NoError(t, selection.LookUp(mock.Schedule("WN1")))
	assert.ErrorIs(t, selection.LookUp(nil), ErrInvalidTransition)
	assert.ErrorIs(t, selection.Analyze(flight_data.FlightRecord{}), ErrInvalidTransition)

	result := NewSession("c")
	require.NoError(t, result.Analyze(flight_data.FlightRecord{}))
	assert.ErrorIs(t, result.Analyze(flight_data.FlightRecord{}), ErrInvalidTransition)
	assert.ErrorIs(t, result.LookUp(nil), ErrInvalidTransition)
	assert.ErrorIs(t, result.Select(1, mock), ErrInvalidTransition)

	// rejected actions leave the state alone
	assert.Equal(t, StateResult, result.Snapshot().State)
}

func TestSession_SelectUnknownFlight(t *testing.T) {
	sess := NewSession("s")
	require.NoError(t, sess.LookUp(calmMock().Schedule("WN1")))

	err := sess.Select(9, calmMock())
	assert.ErrorIs(t, err, ErrUnknownFlight)
	assert.Equal(t, StateSelection, sess.Snapshot().State)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Hour, 10)
	a := NewSession(newSessionID())
	b := NewSession(newSessionID())
	store.Add(a)
	store.Add(b)

	assert.NotEqual(t, a.ID, b.ID)
	got, ok := store.Get(a.ID)
	assert.True(t, ok)
	assert.Same(t, a, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_EvictsIdle(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore(10*time.Minute, 10)
	store.now = func() time.Time { return now }

	stale := NewSession("stale")
	fresh := NewSession("fresh")
	store.Add(stale)
	store.Add(fresh)

	now = now.Add(6 * time.Minute)
	_, ok := store.Get("fresh")
	require.True(t, ok)

	now = now.Add(6 * time.Minute)
	_, ok = store.Get("stale")
	assert.False(t, ok)
	_, ok = store.Get("fresh")
	assert.True(t, ok)

	// adding sweeps everything past the idle limit
	now = now.Add(11 * time.Minute)
	store.Add(NewSession("new"))
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_CapDropsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Hour, 2)
	store.now = func() time.Time { return now }

	store.Add(NewSession("a"))
	now = now.Add(time.Second)
	store.Add(NewSession("b"))
	now = now.Add(time.Second)
	_, ok := store.Get("a")
	require.True(t, ok)

	now = now.Add(time.Second)
	store.Add(NewSession("c"))

	assert.Equal(t, 2, store.Len())
	_, ok = store.Get("b")
	assert.False(t, ok)
	_, ok = store.Get("a")
	assert.True(t, ok)
	_, ok = store.Get("c")
	assert.True(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "landing", StateLanding.String())
	assert.Equal(t, "selection", StateSelection.String())
	assert.Equal(t, "result", StateResult.String())
}
