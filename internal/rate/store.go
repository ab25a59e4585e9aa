package rate

import (
	"context"
	"errors"
	"fxconvert/internal/adapters"
	"fxconvert/internal/catalog"
	"fxconvert/internal/domain"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultFreshness  = 5 * time.Minute
	DefaultRetryDelay = time.Second

	persistTimeout = 5 * time.Second
)

// Deferrer runs task once after delay.
type Deferrer interface {
	Defer(delay time.Duration, task func()) error
}

type Metrics interface {
	ObserveFetch(outcome string, elapsed time.Duration)
	SetConnected(connected bool)
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string, time.Duration) {}
func (noopMetrics) SetConnected(bool)                  {}

type StoreConfig struct {
	Freshness  time.Duration
	RetryDelay time.Duration
	Now        func() time.Time
	Metrics    Metrics
}

// Snapshot is a copy of the store state at one point in time.
type Snapshot struct {
	Base      string
	Selected  []string
	Rates     domain.RateTable
	FetchedAt time.Time
	State     domain.LoadState
	Connected bool
}

type fetch struct {
	id     string
	base   string
	cancel context.CancelFunc
}

// Store owns the base currency, the selection and the last rate table.
// All state is confined to the run loop; exported methods submit work to it.
type Store struct {
	client  adapters.RateClient
	prefs   adapters.PreferenceRepository
	catalog *catalog.Catalog
	retry   Deferrer
	metrics Metrics
	now     func() time.Time

	freshness  time.Duration
	retryDelay time.Duration

	ctx       context.Context
	cancel    context.CancelFunc
	ops       chan func()
	done      chan struct{}
	closeOnce sync.Once

	// owned by run
	base         string
	selected     []string
	rates        domain.RateTable
	fetchedAt    time.Time
	state        domain.LoadState
	connected    bool
	inflight     *fetch
	retryPending bool
}

func (s *Store) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ctx.Done():
			return
		case op := <-s.ops:
			if s.closed() {
				return
			}
			op()
		}
	}
}

// closed reports whether Close ran or the parent context is gone.
func (s *Store) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return s.ctx.Err() != nil
	}
}

// do runs op on the loop and waits for it.
func (s *Store) do(op func()) error {
	if s.closed() {
		return domain.ErrStoreClosed
	}
	finished := make(chan struct{})
	select {
	case s.ops <- func() { op(); close(finished) }:
	case <-s.done:
		return domain.ErrStoreClosed
	case <-s.ctx.Done():
		return domain.ErrStoreClosed
	}
	select {
	case <-finished:
		return nil
	case <-s.done:
		return domain.ErrStoreClosed
	case <-s.ctx.Done():
		return domain.ErrStoreClosed
	}
}

func (s *Store) call(op func() error) error {
	var opErr error
	if err := s.do(func() { opErr = op() }); err != nil {
		return err
	}
	return opErr
}

// post hands op to the loop without waiting for it. Used by fetch and retry goroutines.
func (s *Store) post(op func()) {
	if s.closed() {
		return
	}
	select {
	case s.ops <- op:
	case <-s.done:
	case <-s.ctx.Done():
	}
}

// LoadRates fetches rates for the current base unless a fresh table exists or the
// same fetch is already running. It returns once the fetch has been started.
func (s *Store) LoadRates() error {
	return s.do(s.loadRates)
}

func (s *Store) loadRates() {
	if s.inflight != nil {
		if s.inflight.base == s.base {
			return
		}
		logrus.WithFields(logrus.Fields{
			"fetch_id": s.inflight.id,
			"base":     s.inflight.base,
		}).Info("Superseding in-flight rates fetch")
		s.inflight.cancel()
		s.inflight = nil
	}

	if s.isFresh() {
		if s.state.IsLoading() {
			s.state = domain.LoadState{Status: domain.StatusLoaded, LoadedAt: s.fetchedAt}
		}
		return
	}

	if !s.connected {
		s.state = domain.LoadState{Status: domain.StatusFailed, Reason: ReasonNoConnection}
		return
	}

	s.startFetch()
}

func (s *Store) isFresh() bool {
	return s.state.Status != domain.StatusFailed &&
		!s.rates.IsEmpty() &&
		s.rates.Base == s.base &&
		!s.fetchedAt.IsZero() &&
		s.now().Sub(s.fetchedAt) <= s.freshness
}

func (s *Store) startFetch() {
	ctx, cancel := context.WithCancel(s.ctx)
	f := &fetch{id: uuid.NewString(), base: s.base, cancel: cancel}
	s.inflight = f
	s.state = domain.LoadState{Status: domain.StatusLoading}

	logrus.WithFields(logrus.Fields{"fetch_id": f.id, "base": f.base}).Debug("Fetching exchange rates")

	go func() {
		started := time.Now()
		table, err := s.client.GetExchangeRates(ctx, f.base)
		elapsed := time.Since(started)
		s.post(func() { s.finishFetch(f, table, err, elapsed) })
	}()
}

func (s *Store) finishFetch(f *fetch, table domain.RateTable, err error, elapsed time.Duration) {
	f.cancel()
	if s.inflight != f {
		// superseded; the result belongs to a base that is no longer current
		return
	}
	s.inflight = nil

	log := logrus.WithFields(logrus.Fields{
		"fetch_id": f.id,
		"base":     f.base,
		"elapsed":  elapsed.String(),
	})

	if err != nil {
		s.metrics.ObserveFetch("error", elapsed)
		reason := FailureReason(err)
		s.state = domain.LoadState{Status: domain.StatusFailed, Reason: reason}
		log.WithError(err).WithField("reason", reason).Warn("Failed to fetch exchange rates")
		return
	}

	if table.Base == "" {
		table.Base = f.base
	}
	s.metrics.ObserveFetch("success", elapsed)
	s.rates = table
	s.fetchedAt = s.now()
	s.state = domain.LoadState{Status: domain.StatusLoaded, LoadedAt: s.fetchedAt}
	log.WithFields(logrus.Fields{"date": table.Date, "rates": len(table.Rates)}).Info("Exchange rates loaded")
}

// SwapBaseCurrency makes to the base. The previous base becomes a selected target.
func (s *Store) SwapBaseCurrency(to string) error {
	if to == "" {
		return domain.ErrEmptyCurrencyCode
	}
	return s.do(func() {
		if to == s.base {
			return
		}
		s.selected = slices.DeleteFunc(s.selected, func(c string) bool { return c == to })
		if !slices.Contains(s.selected, s.base) {
			s.selected = append(s.selected, s.base)
		}
		s.base = to
		s.fetchedAt = time.Time{}
		s.persist()
		s.loadRates()
	})
}

// DropBaseCurrency handles the base being unticked in the selection screen: the
// first other selected currency, or usd, takes its place.
func (s *Store) DropBaseCurrency() error {
	return s.do(s.dropBase)
}

func (s *Store) dropBase() {
	remaining := slices.DeleteFunc(slices.Clone(s.selected), func(c string) bool { return c == s.base })
	newBase := domain.DefaultBaseCurrency
	if len(remaining) > 0 {
		newBase = remaining[0]
	}
	if newBase == s.base {
		s.remove(s.base)
		return
	}
	s.base = newBase
	s.selected = slices.DeleteFunc(remaining, func(c string) bool { return c == newBase })
	s.fetchedAt = time.Time{}
	s.persist()
	s.loadRates()
}

// AddCurrency ignores the current base; it is never part of the selection.
func (s *Store) AddCurrency(code string) error {
	if code == "" {
		return domain.ErrEmptyCurrencyCode
	}
	return s.do(func() {
		if code != s.base {
			s.add(code)
		}
	})
}

func (s *Store) RemoveCurrency(code string) error {
	if code == "" {
		return domain.ErrEmptyCurrencyCode
	}
	return s.do(func() { s.remove(code) })
}

// ToggleCurrency flips code in the selection. Toggling the base drops it the way
// DropBaseCurrency does.
func (s *Store) ToggleCurrency(code string) error {
	if code == "" {
		return domain.ErrEmptyCurrencyCode
	}
	return s.do(func() {
		switch {
		case code == s.base:
			s.dropBase()
		case slices.Contains(s.selected, code):
			s.remove(code)
		default:
			s.add(code)
		}
	})
}

func (s *Store) RemoveBaseCurrencyFromSelection() error {
	return s.do(func() { s.remove(s.base) })
}

func (s *Store) add(code string) {
	if slices.Contains(s.selected, code) {
		return
	}
	s.selected = append(s.selected, code)
	s.persist()
}

func (s *Store) remove(code string) {
	before := len(s.selected)
	s.selected = slices.DeleteFunc(s.selected, func(c string) bool { return c == code })
	if len(s.selected) != before {
		s.persist()
	}
}

func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(s.ctx, persistTimeout)
	defer cancel()

	prefs := domain.Preferences{BaseCurrency: s.base, SelectedCurrencies: slices.Clone(s.selected)}
	if err := s.prefs.Save(ctx, prefs); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"base":     prefs.BaseCurrency,
			"selected": prefs.SelectedCurrencies,
		}).Error("Failed to save preferences")
	}
}

// SetConnected records a reachability transition. Becoming reachable with no
// rates schedules a single retry after the retry delay.
func (s *Store) SetConnected(connected bool) error {
	return s.call(func() error {
		if s.connected == connected {
			return nil
		}
		s.connected = connected
		s.metrics.SetConnected(connected)
		logrus.WithField("connected", connected).Info("Connectivity changed")

		if !connected || !s.rates.IsEmpty() || s.retryPending {
			return nil
		}
		s.retryPending = true
		if err := s.retry.Defer(s.retryDelay, s.retryLoad); err != nil {
			s.retryPending = false
			return err
		}
		return nil
	})
}

func (s *Store) retryLoad() {
	s.post(func() {
		s.retryPending = false
		if !s.rates.IsEmpty() || s.inflight != nil || !s.connected {
			return
		}
		logrus.WithField("base", s.base).Info("Retrying rates load after reconnect")
		s.loadRates()
	})
}

// DerivedRows returns one row per selected currency other than the base, in
// selection order. Codes unknown to the catalog are skipped; codes missing from
// the rate table get rate 0.
func (s *Store) DerivedRows() []domain.DisplayRow {
	_, rows := s.Rows()
	return rows
}

// Rows returns DerivedRows together with the base they were computed against.
func (s *Store) Rows() (string, []domain.DisplayRow) {
	var (
		base string
		rows []domain.DisplayRow
	)
	_ = s.do(func() {
		base = s.base
		rows = make([]domain.DisplayRow, 0, len(s.selected))
		for _, code := range s.selected {
			if code == s.base {
				continue
			}
			cur, ok := s.catalog.Lookup(code)
			if !ok {
				continue
			}
			var rate float64
			if s.rates.Base == s.base {
				rate = s.rates.Rate(code)
			}
			rows = append(rows, domain.DisplayRow{Currency: cur, Rate: rate})
		}
	})
	return base, rows
}

// Favorites returns the selected currencies known to the catalog, filtered by query.
func (s *Store) Favorites(query string) []domain.Currency {
	matches := s.matching(query)
	var favorites []domain.Currency
	_ = s.do(func() {
		favorites = make([]domain.Currency, 0, len(s.selected))
		for _, code := range s.selected {
			cur, ok := s.catalog.Lookup(code)
			if !ok {
				continue
			}
			if _, hit := matches[code]; hit {
				favorites = append(favorites, cur)
			}
		}
	})
	return favorites
}

// Available returns catalog currencies that are not selected, filtered by query.
func (s *Store) Available(query string) []domain.Currency {
	found := s.catalog.Search(query)
	var available []domain.Currency
	_ = s.do(func() {
		available = make([]domain.Currency, 0, len(found))
		for _, cur := range found {
			if !slices.Contains(s.selected, cur.Code) {
				available = append(available, cur)
			}
		}
	})
	return available
}

func (s *Store) matching(query string) map[string]struct{} {
	if strings.TrimSpace(query) == "" {
		return s.catalog.Codes()
	}
	found := s.catalog.Search(query)
	codes := make(map[string]struct{}, len(found))
	for _, cur := range found {
		codes[cur.Code] = struct{}{}
	}
	return codes
}

// Snapshot returns a zero Snapshot once the store is closed.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	_ = s.do(func() {
		rates := s.rates
		rates.Rates = maps.Clone(s.rates.Rates)
		snap = Snapshot{
			Base:      s.base,
			Selected:  slices.Clone(s.selected),
			Rates:     rates,
			FetchedAt: s.fetchedAt,
			State:     s.state,
			Connected: s.connected,
		}
	})
	return snap
}

// Close stops the loop and cancels a running fetch. Completions that arrive
// afterwards are dropped.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.done)
	})
}

func restorePreferences(ctx context.Context, repo adapters.PreferenceRepository) domain.Preferences {
	prefs, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPreferencesNotFound) {
			logrus.WithError(err).Warn("Failed to load preferences, using defaults")
		}
		return domain.DefaultPreferences()
	}
	prefs = prefs.WithDefaults()

	seen := make(map[string]struct{}, len(prefs.SelectedCurrencies))
	selected := make([]string, 0, len(prefs.SelectedCurrencies))
	for _, code := range prefs.SelectedCurrencies {
		if _, dup := seen[code]; dup || code == "" {
			continue
		}
		seen[code] = struct{}{}
		selected = append(selected, code)
	}
	prefs.SelectedCurrencies = selected
	return prefs
}

// NewStore restores saved preferences and starts the store loop. The loop stops
// on Close or when ctx is cancelled.
func NewStore(
	ctx context.Context,
	client adapters.RateClient,
	prefs adapters.PreferenceRepository,
	cat *catalog.Catalog,
	retry Deferrer,
	cfg StoreConfig,
) *Store {
	if cfg.Freshness <= 0 {
		cfg.Freshness = DefaultFreshness
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}

	restored := restorePreferences(ctx, prefs)
	storeCtx, cancel := context.WithCancel(ctx)

	s := &Store{
		client:     client,
		prefs:      prefs,
		catalog:    cat,
		retry:      retry,
		metrics:    cfg.Metrics,
		now:        cfg.Now,
		freshness:  cfg.Freshness,
		retryDelay: cfg.RetryDelay,
		ctx:        storeCtx,
		cancel:     cancel,
		ops:        make(chan func()),
		done:       make(chan struct{}),
		base:       restored.BaseCurrency,
		selected:   restored.SelectedCurrencies,
		state:      domain.LoadState{Status: domain.StatusIdle},
		connected:  true,
	}
	cfg.Metrics.SetConnected(true)

	go s.run()
	go func() {
		<-storeCtx.Done()
		s.Close()
	}()
	return s
}
