package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/booking-front/internal/layout"
	"github.com/parkspot/booking-front/internal/model"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	st := NewStore(ttl)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }
	return st, &now
}

func TestStoreCreateAndGet(t *testing.T) {
	st, _ := newTestStore(30 * time.Minute)
	s := st.Create(model.User{ID: "7", Email: "a@b.c"}, "upstream-token")

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, "7", got.User.ID)
	assert.Equal(t, "upstream-token", got.UpstreamToken)
	assert.Equal(t, 1, st.Len())
}

func TestStoreGetExpired(t *testing.T) {
	st, now := newTestStore(30 * time.Minute)
	s := st.Create(model.User{ID: "7"}, "tok")

	*now = now.Add(31 * time.Minute)
	_, ok := st.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len(), "expired sessions are removed on access")
}

func TestStoreGetRefreshesIdleTimer(t *testing.T) {
	st, now := newTestStore(30 * time.Minute)
	s := st.Create(model.User{ID: "7"}, "tok")

	*now = now.Add(20 * time.Minute)
	_, ok := st.Get(s.ID)
	require.True(t, ok)

	*now = now.Add(20 * time.Minute) // 40min total, but touched at 20
	_, ok = st.Get(s.ID)
	assert.True(t, ok)
}

func TestStoreSweep(t *testing.T) {
	st, now := newTestStore(10 * time.Minute)
	st.Create(model.User{ID: "1"}, "t1")
	st.Create(model.User{ID: "2"}, "t2")

	*now = now.Add(5 * time.Minute)
	live := st.Create(model.User{ID: "3"}, "t3")

	*now = now.Add(6 * time.Minute)
	removed := st.Sweep()
	assert.Equal(t, 2, removed)

	_, ok := st.Get(live.ID)
	assert.True(t, ok)
}

func TestStoreDeleteMissingIsNoop(t *testing.T) {
	st, _ := newTestStore(time.Minute)
	st.Delete("nope")
	assert.Equal(t, 0, st.Len())
}

func TestLayoutStaleFetchDropped(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create(model.User{ID: "7"}, "tok")

	genOld := s.BeginLayoutFetch("lot-11|2025-06-20T09:00:00|2025-06-20T11:00:00")
	genNew := s.BeginLayoutFetch("lot-12|2025-06-20T09:00:00|2025-06-20T11:00:00")

	oldSeats := []layout.Seat{{Code: "A1"}}
	assert.False(t, s.StoreLayout(genOld, "lot-11|2025-06-20T09:00:00|2025-06-20T11:00:00", oldSeats, []string{"1F"}),
		"a superseded fetch must not overwrite the layout")

	newSeats := []layout.Seat{{Code: "B2-A4"}}
	assert.True(t, s.StoreLayout(genNew, "lot-12|2025-06-20T09:00:00|2025-06-20T11:00:00", newSeats, []string{"B2"}))

	seats, floors := s.Layout()
	assert.Equal(t, newSeats, seats)
	assert.Equal(t, []string{"B2"}, floors)
}

func TestLayoutKeyMismatchDropped(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create(model.User{ID: "7"}, "tok")

	gen := s.BeginLayoutFetch("lot-11|a|b")
	assert.False(t, s.StoreLayout(gen, "lot-11|a|c", []layout.Seat{{Code: "A1"}}, []string{"1F"}),
		"matching generation with different inputs is still stale")

	seats, floors := s.Layout()
	assert.Empty(t, seats)
	assert.Empty(t, floors)
}

func TestLayoutEmptyBeforeFirstStore(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create(model.User{ID: "7"}, "tok")
	seats, floors := s.Layout()
	assert.Empty(t, seats)
	assert.Empty(t, floors)
}
