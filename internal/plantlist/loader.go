package plantlist

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"plantmanager/internal/logging"
	"plantmanager/internal/model"
)

// PageFetcher fetches one page of plants. *api.Client satisfies it.
type PageFetcher interface {
	FetchPlants(ctx context.Context, page, limit int) ([]model.Plant, error)
}

// Fetch performs req and converts the outcome into an Event.
func Fetch(ctx context.Context, f PageFetcher, req Request) Event {
	plants, err := f.FetchPlants(ctx, req.Page, req.Limit)
	if err != nil {
		logging.Warn("plant page fetch failed", zap.Int("page", req.Page), zap.Error(err))
		return PageFailed{Page: req.Page, Err: err}
	}
	logging.Debug("plant page fetched", zap.Int("page", req.Page), zap.Int("count", len(plants)))
	return PageLoaded{Page: req.Page, Plants: plants}
}

// WithEnvironments prepends the synthetic "all" environment to envs.
func WithEnvironments(envs []model.Environment) []model.Environment {
	result := make([]model.Environment, 0, len(envs)+1)
	result = append(result, model.AllEnvironments())
	for _, env := range envs {
		if env.Key == model.AllEnvironmentsKey {
			continue
		}
		result = append(result, env)
	}
	return result
}

// Loader drives State synchronously for callers outside the TUI.
// Observers run after every change, in subscription order, on the goroutine
// that caused the change.
type Loader struct {
	fetcher PageFetcher

	mu        sync.Mutex
	state     State
	observers map[int]func(State)
	nextID    int
}

// NewLoader returns a loader in the initial state.
func NewLoader(f PageFetcher) *Loader {
	return &Loader{
		fetcher:   f,
		state:     New(),
		observers: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (l *Loader) Subscribe(fn func(State)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.observers[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.observers, id)
	}
}

// FetchNextPage fetches the current page. It is a no-op while another fetch
// is outstanding or once the end of data was reached. The fetch error, if any,
// is returned and also recorded in State.Err.
func (l *Loader) FetchNextPage(ctx context.Context) error {
	return l.run(ctx, State.BeginFetch)
}

// OnScrollNearEnd advances to the next page when distance reaches
// ScrollThreshold.
func (l *Loader) OnScrollNearEnd(ctx context.Context, distance float64) error {
	return l.run(ctx, func(s State) (State, Request, bool) {
		return s.OnScrollNearEnd(distance)
	})
}

// SelectEnvironment changes the filter without fetching.
func (l *Loader) SelectEnvironment(key string) {
	l.mu.Lock()
	l.state = l.state.SelectEnvironment(key)
	s := l.state
	l.mu.Unlock()
	l.notify(s)
}

func (l *Loader) run(ctx context.Context, begin func(State) (State, Request, bool)) error {
	l.mu.Lock()
	next, req, ok := begin(l.state)
	if !ok {
		l.mu.Unlock()
		return nil
	}
	l.state = next
	l.mu.Unlock()
	l.notify(next)

	ev := Fetch(ctx, l.fetcher, req)

	l.mu.Lock()
	l.state = l.state.Apply(ev)
	s := l.state
	l.mu.Unlock()
	l.notify(s)

	if failed, ok := ev.(PageFailed); ok {
		return failed.Err
	}
	return nil
}

func (l *Loader) notify(s State) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.observers))
	for id := range l.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.observers[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
