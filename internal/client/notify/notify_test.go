package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu  sync.Mutex
	got []Notification
}

func (c *collector) add(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
}

func (c *collector) all() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.got...)
}

func TestDispatcher_PublishToSubscribers(t *testing.T) {
	d := NewDispatcher(time.Minute)
	defer d.Close()

	a, b := &collector{}, &collector{}
	d.Subscribe(a.add)
	unsubB := d.Subscribe(b.add)

	d.Success("Worker suspended")
	unsubB()
	unsubB()
	d.Error("Failed to fetch data")

	got := a.all()
	require.Len(t, got, 2)
	assert.Equal(t, KindSuccess, got[0].Kind)
	assert.Equal(t, "Worker suspended", got[0].Message)
	assert.Equal(t, KindError, got[1].Kind)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	assert.Len(t, b.all(), 1, "unsubscribed before the second notification")
}

func TestDispatcher_NoSubscriberDrops(t *testing.T) {
	d := NewDispatcher(time.Minute)
	defer d.Close()

	d.Error("nobody listens")
	assert.Empty(t, d.Active())
}

func TestDispatcher_AutoDismiss(t *testing.T) {
	d := NewDispatcher(20 * time.Millisecond)
	defer d.Close()
	d.Subscribe(func(Notification) {})

	d.Success("saved")
	require.Len(t, d.Active(), 1)

	assert.Eventually(t, func() bool { return len(d.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestDispatcher_ActiveOrderAndDismiss(t *testing.T) {
	d := NewDispatcher(time.Minute)
	defer d.Close()
	d.Subscribe(func(Notification) {})

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	d.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	d.Success("first")
	d.Error("second")

	active := d.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)

	d.Dismiss(active[0].ID)
	active = d.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)
}

func TestNewDispatcher_DefaultTTL(t *testing.T) {
	d := NewDispatcher(0)
	assert.Equal(t, DefaultTTL, d.ttl)
}
