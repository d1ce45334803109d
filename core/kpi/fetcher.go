package kpi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paylens/dashgate/core/gate"
	"github.com/paylens/dashgate/core/logger"
	"github.com/paylens/dashgate/core/session"
	"github.com/paylens/dashgate/pkg/async"
)

// Result is the externally visible state of a fetch cycle.
type Result struct {
	// Data holds the three partition snapshots, or nil while loading and on
	// any failure. There is no partial success: either all three reads
	// settled cleanly or Data stays nil.
	Data *Dataset
	// Loading is true while a fetch cycle is in flight.
	Loading bool
	// Err is the user-facing failure, nil on success.
	Err error
	// Unauthorized is true when the failure was the session check; the
	// caller should navigate to the login page.
	Unauthorized bool
}

// IsValid reports whether the result carries data.
func (r Result) IsValid() bool {
	return r.Data != nil
}

// Fetcher orchestrates one KPI fetch cycle: remote session check, concurrent
// fan-out over the three partitions, normalization, and a best-effort
// activity touch. It keeps the last result as observable state.
//
// Concurrent fetches are safe: each cycle gets a generation number and a
// completing cycle older than the latest one is discarded instead of
// overwriting newer state.
type Fetcher struct {
	gate    *gate.Gate
	store   session.Store
	source  Source
	toucher ActivityToucher
	log     *slog.Logger

	touchTimeout time.Duration

	gen atomic.Uint64

	mu          sync.Mutex
	state       Result
	lastCompany string
	lastPeriod  string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the logger for swallowed best-effort failures.
func WithLogger(log *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// WithTouchTimeout bounds the fire-and-forget activity update.
func WithTouchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.touchTimeout = d
		}
	}
}

// NewFetcher creates a Fetcher. Pass a NoopToucher when activity tracking is
// not needed.
func NewFetcher(g *gate.Gate, store session.Store, source Source, toucher ActivityToucher, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		gate:         g,
		store:        store,
		source:       source,
		toucher:      toucher,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		touchTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch runs one fetch cycle for (companyID, period) and returns its result.
// An empty companyID or period short-circuits to an idle result: not loading,
// no data, no error.
func (f *Fetcher) Fetch(ctx context.Context, companyID, period string) Result {
	gen := f.gen.Add(1)

	if companyID == "" || period == "" {
		return f.commit(gen, Result{}, companyID, period)
	}

	f.commit(gen, Result{Loading: true}, companyID, period)

	res := f.run(ctx, companyID, period)
	return f.commit(gen, res, companyID, period)
}

// Refetch re-runs the last requested (company, period) pair. Safe to call
// concurrently with an in-flight fetch; stale completions are discarded.
// Without a prior Fetch it returns the current (idle) state.
func (f *Fetcher) Refetch(ctx context.Context) Result {
	f.mu.Lock()
	companyID, period := f.lastCompany, f.lastPeriod
	f.mu.Unlock()

	if companyID == "" || period == "" {
		return f.State()
	}
	return f.Fetch(ctx, companyID, period)
}

// State returns the result of the most recently completed cycle.
func (f *Fetcher) State() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Fetcher) run(ctx context.Context, companyID, period string) Result {
	sess, err := f.store.Read(ctx, session.RoleCompany.Key())
	if err != nil {
		return Result{Err: ErrSessionExpired, Unauthorized: true}
	}

	outcome := f.gate.Check(ctx, sess, session.RoleCompany)
	if !outcome.IsAuthorized() {
		// Both copies of an invalid session get dropped: the cookie copy at
		// the routing edge, the store copy here.
		if err := f.store.Clear(ctx, session.RoleCompany.Key()); err != nil {
			f.log.DebugContext(ctx, "failed to clear invalid session", logger.Error(err))
		}
		return Result{Err: ErrSessionExpired, Unauthorized: true}
	}

	// Fan out the three partition reads and wait for all of them. A failing
	// read does not cancel its siblings; the combined result is simply
	// discarded once any failure is observed.
	workforce := async.Go(ctx, func(ctx context.Context) (Row, error) {
		return f.source.Workforce(ctx, companyID, period)
	})
	payroll := async.Go(ctx, func(ctx context.Context) (Row, error) {
		return f.source.Payroll(ctx, companyID, period)
	})
	absence := async.Go(ctx, func(ctx context.Context) (Row, error) {
		return f.source.Absence(ctx, companyID, period)
	})

	wfRow, wfErr := workforce.Await()
	payRow, payErr := payroll.Await()
	absRow, absErr := absence.Await()

	var errs []error
	for _, p := range []struct {
		name string
		err  error
	}{
		{PartitionWorkforce, wfErr},
		{PartitionPayroll, payErr},
		{PartitionAbsence, absErr},
	} {
		if p.err != nil {
			errs = append(errs, &PartitionError{Partition: p.name, Err: p.err})
		}
	}
	if len(errs) > 0 {
		return Result{Err: errors.Join(errs...)}
	}

	f.touchActivity(ctx, companyID)

	return Result{
		Data: &Dataset{
			Workforce:  NewWorkforce(wfRow),
			Financials: NewPayroll(payRow),
			Absences:   NewAbsence(absRow),
		},
	}
}

// touchActivity updates the company's last-activity timestamp off the
// critical path. Failures are logged at debug level and discarded; they must
// never affect the fetch outcome.
func (f *Fetcher) touchActivity(ctx context.Context, companyID string) {
	touchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.touchTimeout)
	go func() {
		defer cancel()
		if err := f.toucher.Touch(touchCtx, companyID); err != nil {
			f.log.DebugContext(touchCtx, "activity touch failed",
				logger.Component("kpi"), logger.Error(err), "company_id", companyID)
		}
	}()
}

// commit publishes res as the current state unless a newer cycle has started,
// in which case res is returned to the caller but not published.
func (f *Fetcher) commit(gen uint64, res Result, companyID, period string) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastCompany, f.lastPeriod = companyID, period
	if gen == f.gen.Load() {
		f.state = res
	}
	return res
}
