// Package notify delivers transient operator notifications. A Dispatcher
// is created once by the console and handed to the components that report
// outcomes.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays active.
const DefaultTTL = 4 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID      uuid.UUID
	Kind    Kind
	Message string
	At      time.Time
}

// Notifier is what components use to report an outcome.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Dispatcher fans notifications out to subscribers and keeps each one
// active until its ttl expires. It is safe for concurrent use.
type Dispatcher struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Notification)
	active map[uuid.UUID]Notification
	timers map[uuid.UUID]*time.Timer
}

var _ Notifier = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher; a non-positive ttl means DefaultTTL.
func NewDispatcher(ttl time.Duration) *Dispatcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Dispatcher{
		ttl:    ttl,
		now:    time.Now,
		subs:   map[int]func(Notification){},
		active: map[uuid.UUID]Notification{},
		timers: map[uuid.UUID]*time.Timer{},
	}
}

// Subscribe registers fn and returns the function that removes it.
func (d *Dispatcher) Subscribe(fn func(Notification)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subs[id] = fn
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.subs, id)
			d.mu.Unlock()
		})
	}
}

func (d *Dispatcher) Success(msg string) { d.publish(KindSuccess, msg) }
func (d *Dispatcher) Error(msg string)   { d.publish(KindError, msg) }

// Active returns the notifications that have not been dismissed yet, oldest
// first.
func (d *Dispatcher) Active() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Notification, 0, len(d.active))
	for _, n := range d.active {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// Dismiss removes a notification before its ttl expires.
func (d *Dispatcher) Dismiss(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dismissLocked(id)
}

// Close stops the pending auto-dismiss timers and drops every subscriber.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id := range d.active {
		d.dismissLocked(id)
	}
	d.subs = map[int]func(Notification){}
}

// publish drops the notification when nobody is subscribed.
func (d *Dispatcher) publish(kind Kind, msg string) {
	n := Notification{ID: uuid.New(), Kind: kind, Message: msg, At: d.now()}

	d.mu.Lock()
	if len(d.subs) == 0 {
		d.mu.Unlock()
		return
	}
	subs := make([]func(Notification), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	d.active[n.ID] = n
	d.timers[n.ID] = time.AfterFunc(d.ttl, func() { d.Dismiss(n.ID) })
	d.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

func (d *Dispatcher) dismissLocked(id uuid.UUID) {
	if t, ok := d.timers[id]; ok {
		t.Stop()
		delete(d.timers, id)
	}
	delete(d.active, id)
}
