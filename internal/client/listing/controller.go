package listing

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hustleadmin/internal/logging"
)

// ApplyPolicy decides whether a settled fetch may update the result.
type ApplyPolicy int

const (
	// LastSettledWins applies every settled fetch; the last one to settle
	// determines the final state.
	LastSettledWins ApplyPolicy = iota
	// LatestIssuedOnly applies a settled fetch only if no newer fetch was
	// issued after it.
	LatestIssuedOnly
)

func (p ApplyPolicy) String() string {
	switch p {
	case LastSettledWins:
		return "last-settled-wins"
	case LatestIssuedOnly:
		return "latest-issued-only"
	default:
		return fmt.Sprintf("ApplyPolicy(%d)", int(p))
	}
}

// Snapshot is a consistent copy of a controller's state.
type Snapshot[T any] struct {
	Query      Query
	Rows       []T
	TotalPages int
	Loading    bool
	Generation uint64 // most recently issued fetch
	Applied    uint64 // fetch the rows come from
	Err        error
}

// Settlement describes one fetch that has just finished.
type Settlement[T any] struct {
	Generation uint64
	Params     Params
	Applied    bool
	Err        error
	Snapshot   Snapshot[T]
}

// Controller manages the query/result lifecycle of one listing.
// It is safe for concurrent use.
type Controller[T any] struct {
	ctx      context.Context
	fetch    FetchFunc[T]
	log      logging.Logger
	policy   ApplyPolicy
	filters  map[Filter]struct{}
	onSettle func(Settlement[T])
	initial  bool

	mu         sync.Mutex
	idle       *sync.Cond
	query      Query
	rows       []T
	totalPages int
	lastErr    error
	generation uint64
	applied    uint64
	inflight   int // fetches not yet settled; drives Loading
	running    int // fetches whose settle callback has not returned yet
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithLogger sets the logger for fetch failures and dropped results.
func WithLogger[T any](l logging.Logger) Option[T] {
	return func(c *Controller[T]) { c.log = l }
}

// WithApplyPolicy selects how settled results are applied; the default is
// LastSettledWins.
func WithApplyPolicy[T any](p ApplyPolicy) Option[T] {
	return func(c *Controller[T]) { c.policy = p }
}

// WithPageSize sets the initial page size; invalid sizes are ignored.
func WithPageSize[T any](n int) Option[T] {
	return func(c *Controller[T]) {
		if validPageSize(n) {
			c.query.PageSize = n
		}
	}
}

// WithFilters replaces the accepted filter values; "all" is always accepted.
func WithFilters[T any](filters ...Filter) Option[T] {
	return func(c *Controller[T]) {
		c.filters = map[Filter]struct{}{FilterAll: {}}
		for _, f := range filters {
			c.filters[f] = struct{}{}
		}
	}
}

// WithDependency sets an initial extra dependency.
func WithDependency[T any](key, value string) Option[T] {
	return func(c *Controller[T]) {
		if c.query.Deps == nil {
			c.query.Deps = map[string]string{}
		}
		c.query.Deps[key] = value
	}
}

// WithInitialFetch makes New issue the first fetch right away.
func WithInitialFetch[T any]() Option[T] {
	return func(c *Controller[T]) { c.initial = true }
}

// WithOnSettle registers a callback invoked after every fetch settles, in
// the goroutine that ran the fetch.
func WithOnSettle[T any](fn func(Settlement[T])) Option[T] {
	return func(c *Controller[T]) { c.onSettle = fn }
}

// New creates a controller with page 1, page size 10, empty search and the
// "all" filter. Unless WithInitialFetch is given, no fetch is issued until
// the first change or Refetch.
// Fetches run with ctx; cancelling it makes pending fetches fail.
func New[T any](ctx context.Context, fetch FetchFunc[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		ctx:   ctx,
		fetch: fetch,
		log:   logging.Nop(),
		filters: map[Filter]struct{}{
			FilterAll:       {},
			FilterActive:    {},
			FilterSuspended: {},
		},
		query: Query{
			Page:     1,
			PageSize: PageSizes[0],
			Filter:   FilterAll,
		},
		rows:       []T{},
		totalPages: 1,
	}
	c.idle = sync.NewCond(&c.mu)
	for _, o := range opts {
		o(c)
	}
	if c.initial {
		c.Refetch()
	}
	return c
}

// SetPage moves to page n.
func (c *Controller[T]) SetPage(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, n)
	}
	c.update(func(q *Query) bool {
		if q.Page == n {
			return false
		}
		q.Page = n
		return true
	})
	return nil
}

// NextPage advances one page unless the last known page is already shown.
func (c *Controller[T]) NextPage() bool {
	c.mu.Lock()
	page, total := c.query.Page, c.totalPages
	c.mu.Unlock()
	if page >= total {
		return false
	}
	return c.SetPage(page+1) == nil
}

// PrevPage goes back one page unless the first page is shown.
func (c *Controller[T]) PrevPage() bool {
	c.mu.Lock()
	page := c.query.Page
	c.mu.Unlock()
	if page <= 1 {
		return false
	}
	return c.SetPage(page-1) == nil
}

// SetSearch replaces the search text. Every change fetches; there is no debounce.
func (c *Controller[T]) SetSearch(s string) {
	c.update(func(q *Query) bool {
		if q.Search == s {
			return false
		}
		q.Search = s
		return true
	})
}

// SetFilter replaces the status filter.
func (c *Controller[T]) SetFilter(f Filter) error {
	if _, ok := c.filters[f]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	c.update(func(q *Query) bool {
		if q.Filter == f {
			return false
		}
		q.Filter = f
		return true
	})
	return nil
}

// SetPageSize replaces the page size; only 10, 25 and 50 are accepted.
func (c *Controller[T]) SetPageSize(n int) error {
	if !validPageSize(n) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, n)
	}
	c.update(func(q *Query) bool {
		if q.PageSize == n {
			return false
		}
		q.PageSize = n
		return true
	})
	return nil
}

// SetDependency sets an extra dependency, such as a parent entity id.
func (c *Controller[T]) SetDependency(key, value string) {
	c.update(func(q *Query) bool {
		if old, ok := q.Deps[key]; ok && old == value {
			return false
		}
		deps := copyDeps(q.Deps)
		if deps == nil {
			deps = map[string]string{}
		}
		deps[key] = value
		q.Deps = deps
		return true
	})
}

// Refetch issues a fetch for the current query and returns its generation.
func (c *Controller[T]) Refetch() uint64 {
	c.mu.Lock()
	gen, p := c.scheduleLocked()
	c.mu.Unlock()

	go c.run(gen, p)
	return gen
}

// Wait blocks until every issued fetch has settled and its callback returned.
func (c *Controller[T]) Wait() {
	c.mu.Lock()
	for c.running > 0 {
		c.idle.Wait()
	}
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) Rows() []T           { return c.Snapshot().Rows }
func (c *Controller[T]) Query() Query        { return c.Snapshot().Query }
func (c *Controller[T]) LastError() error    { return c.Snapshot().Err }
func (c *Controller[T]) Policy() ApplyPolicy { return c.policy }

func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

func (c *Controller[T]) update(mutate func(q *Query) bool) {
	c.mu.Lock()
	if !mutate(&c.query) {
		c.mu.Unlock()
		return
	}
	gen, p := c.scheduleLocked()
	c.mu.Unlock()

	go c.run(gen, p)
}

// scheduleLocked marks a new fetch as in flight. Loading turns true here,
// before the request is issued.
func (c *Controller[T]) scheduleLocked() (uint64, Params) {
	c.generation++
	c.inflight++
	c.running++
	return c.generation, c.query.params()
}

func (c *Controller[T]) run(gen uint64, p Params) {
	var (
		page Page[T]
		err  error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("fetch panicked: %v", r)
			}
		}()
		page, err = c.fetch(c.ctx, p)
	}()
	c.settle(gen, p, page, err)
}

func (c *Controller[T]) settle(gen uint64, p Params, page Page[T], err error) {
	c.mu.Lock()
	c.inflight--

	applied := c.policy == LastSettledWins || gen == c.generation
	switch {
	case !applied:
		c.log.Debug(c.ctx, "stale list result dropped", "generation", gen, "latest", c.generation)
	case err != nil:
		c.log.Error(c.ctx, "error fetching list", "generation", gen, "page", p.PageNo, "error", err)
		c.rows = []T{}
		c.lastErr = err
		c.applied = gen
	default:
		rows := page.Rows
		if rows == nil {
			rows = []T{}
		}
		c.rows = rows
		if page.TotalPages >= 1 {
			c.totalPages = page.TotalPages
		} else {
			c.totalPages = 1
		}
		c.lastErr = nil
		c.applied = gen
	}

	snap := c.snapshotLocked()
	cb := c.onSettle
	c.mu.Unlock()

	if cb != nil {
		cb(Settlement[T]{Generation: gen, Params: p, Applied: applied, Err: err, Snapshot: snap})
	}

	c.mu.Lock()
	c.running--
	if c.running == 0 {
		c.idle.Broadcast()
	}
	c.mu.Unlock()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	q := c.query
	q.Deps = copyDeps(c.query.Deps)

	rows := make([]T, len(c.rows))
	copy(rows, c.rows)

	return Snapshot[T]{
		Query:      q,
		Rows:       rows,
		TotalPages: c.totalPages,
		Loading:    c.inflight > 0,
		Generation: c.generation,
		Applied:    c.applied,
		Err:        c.lastErr,
	}
}
