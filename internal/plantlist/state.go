// Package plantlist loads the plant catalog page by page and keeps an
// environment-filtered view of everything loaded so far.
//
// State is a value; every transition returns the next state and, when the
// network must be hit, a Request describing the fetch. Callers run the fetch
// (see Fetch) and feed the resulting Event back through Apply. The Bubble Tea
// UI does this with commands and messages. Loader does it synchronously and
// notifies subscribers, for consumers outside the TUI.
package plantlist

import (
	"slices"

	"plantmanager/internal/model"
)

const (
	// PageSize is the number of plants requested per page.
	PageSize = 8

	// ScrollThreshold is the minimum normalized distance from the end of the
	// list that triggers loading the next page.
	ScrollThreshold = 1.0
)

// Request describes a page fetch the caller must perform.
type Request struct {
	Page  int
	Limit int
}

// Event is the outcome of a Request.
type Event interface {
	page() int
}

// PageLoaded reports a successful fetch. An empty Plants means end of data.
type PageLoaded struct {
	Page   int
	Plants []model.Plant
}

// PageFailed reports a failed fetch.
type PageFailed struct {
	Page int
	Err  error
}

func (e PageLoaded) page() int { return e.Page }
func (e PageFailed) page() int { return e.Page }

// State is the plant list as seen by the selection screen.
// Slices are shared between copies and must be treated as read-only.
type State struct {
	Page        int
	All         []model.Plant
	Filtered    []model.Plant
	Environment string
	LoadedAll   bool
	Loading     bool // first page in flight
	LoadingMore bool // a later page in flight
	Err         error
}

// New returns the state before anything has been fetched.
func New() State {
	return State{
		Page:        1,
		Environment: model.AllEnvironmentsKey,
	}
}

// Busy reports whether a fetch is outstanding.
func (s State) Busy() bool {
	return s.Loading || s.LoadingMore
}

// BeginFetch starts fetching the current page. It returns false when a fetch
// is already outstanding or the end of data was reached.
func (s State) BeginFetch() (State, Request, bool) {
	if s.Busy() || s.LoadedAll {
		return s, Request{}, false
	}
	if s.Page == 1 {
		s.Loading = true
	} else {
		s.LoadingMore = true
	}
	s.Err = nil
	return s, Request{Page: s.Page, Limit: PageSize}, true
}

// OnScrollNearEnd advances to the next page when the list is scrolled close
// enough to its end. distance is the fraction of the visible list remaining.
// Until a page has loaded, it asks for the current page again instead.
func (s State) OnScrollNearEnd(distance float64) (State, Request, bool) {
	if distance < ScrollThreshold || s.LoadedAll || s.Busy() {
		return s, Request{}, false
	}
	if len(s.All) == 0 {
		return s.BeginFetch()
	}
	s.Page++
	s.LoadingMore = true
	s.Err = nil
	return s, Request{Page: s.Page, Limit: PageSize}, true
}

// Apply folds the outcome of a fetch into the state. Events for a page other
// than the one in flight are ignored.
func (s State) Apply(ev Event) State {
	if !s.Busy() || ev.page() != s.Page {
		return s
	}
	s.Loading = false
	s.LoadingMore = false

	switch ev := ev.(type) {
	case PageLoaded:
		if len(ev.Plants) == 0 {
			s.LoadedAll = true
			return s
		}
		if s.Page == 1 {
			s.All = slices.Clone(ev.Plants)
		} else {
			s.All = append(slices.Clip(s.All), ev.Plants...)
		}
		s.Err = nil
		s.Filtered = filter(s.All, s.Environment)
	case PageFailed:
		s.Err = ev.Err
		// Step back so the next scroll asks for the same page again.
		if s.Page > 1 {
			s.Page--
		}
	}
	return s
}

// SelectEnvironment changes the filter. It never triggers a fetch.
func (s State) SelectEnvironment(key string) State {
	s.Environment = key
	s.Filtered = filter(s.All, key)
	return s
}

func filter(plants []model.Plant, key string) []model.Plant {
	if key == model.AllEnvironmentsKey {
		return slices.Clone(plants)
	}
	result := make([]model.Plant, 0, len(plants))
	for _, p := range plants {
		if p.HasEnvironment(key) {
			result = append(result, p)
		}
	}
	return result
}
