package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/life-grid/internal/config"
)

// BirthDateStore is the key-value collaborator persisting the last birthdate.
// Implementations swallow their own failures.
type BirthDateStore interface {
	Get(key, fallback string) string
	Set(key, value string)
	Remove(key string)
}

// State is a snapshot of the session. Rows and Annotations are rebuilt on
// every change and never mutated afterwards, so snapshots may be shared.
type State struct {
	BirthDate   string   // Raw input, "" when absent
	Elapsed     *Elapsed // nil when no valid birthdate is present
	Err         error    // ErrInvalidDate or ErrFutureDate, nil otherwise
	Mode        ViewMode
	Dataset     DatasetID
	Overlay     bool
	Annotations AnnotationSet
	Rows        []Row
	Summary     *Summary // nil when Elapsed is nil
}

// HasBirthDate reports whether a birthdate was entered, valid or not.
func (s State) HasBirthDate() bool {
	return s.BirthDate != ""
}

// Session owns the user inputs and recomputes the derived state after each
// change. All methods are expected to run on the UI goroutine.
type Session struct {
	clock   Clock
	store   BirthDateStore
	catalog *Catalog
	log     *slog.Logger

	birth   string
	elapsed *Elapsed
	err     error

	mode    ViewMode
	dataset DatasetID
	overlay bool
	// cleared hides the overlay after an explicit Clear until the next
	// birthdate entry or selector change.
	cleared bool

	annotations AnnotationSet
	rows        []Row
	listeners   []func(State)
}

// NewSession creates a session with the default mode, dataset and overlay.
// store may be nil, in which case nothing is persisted.
func NewSession(clock Clock, store BirthDateStore, catalog *Catalog) *Session {
	if clock == nil {
		clock = RealClock{}
	}
	if catalog == nil {
		catalog = Builtin()
	}
	s := &Session{
		clock:   clock,
		store:   store,
		catalog: catalog,
		log:     slog.With(config.LogKeyComponent, config.CompSession),
		mode:    ViewMode(config.DefaultMode),
		dataset: DatasetID(config.DefaultDataset),
		overlay: config.DefaultOverlay,
	}
	s.recompute()
	return s
}

// OnChange registers a listener called synchronously after every recompute.
func (s *Session) OnChange(fn func(State)) {
	s.listeners = append(s.listeners, fn)
}

// Catalog returns the datasets available to the session.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// SetCatalog replaces the available datasets, for instance after a custom
// dataset was loaded. A selection missing from c falls back to the default.
func (s *Session) SetCatalog(c *Catalog) {
	if c == nil {
		return
	}
	s.catalog = c
	if _, ok := c.Dataset(s.dataset); !ok {
		s.dataset = DatasetID(config.DefaultDataset)
	}
	s.log.Debug(config.MsgCatalogSwap, config.LogKeyCount, len(c.IDs()))
	s.recompute()
}

// Load restores the stored birthdate, if any. It is meant to run once at
// session start and never writes back to the store.
func (s *Session) Load() {
	if s.store == nil {
		return
	}
	stored := s.store.Get(config.StoreKeyBirth, "")
	if stored == "" {
		return
	}
	s.log.Info(config.MsgSessionLoad, config.LogKeyValue, stored)
	_ = s.applyBirthDate(stored, false)
}

// SetBirthDate applies user input. Empty input clears the session. Invalid
// or future dates are kept as the visible error state and returned.
func (s *Session) SetBirthDate(input string) error {
	if strings.TrimSpace(input) == "" {
		s.Clear()
		return nil
	}
	return s.applyBirthDate(input, true)
}

// Clear forgets the birthdate, its derived values and the stored copy.
func (s *Session) Clear() {
	s.birth = ""
	s.elapsed = nil
	s.err = nil
	s.cleared = true
	if s.store != nil {
		s.store.Remove(config.StoreKeyBirth)
	}
	s.log.Info(config.MsgBirthCleared)
	s.recompute()
}

// SetViewMode switches the grid granularity. BirthDate and Elapsed are untouched.
func (s *Session) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownViewMode, string(mode))
	}
	s.log.Debug(config.MsgModeChanged, config.LogKeyOld, s.mode, config.LogKeyNew, mode)
	s.mode = mode
	s.cleared = false
	s.recompute()
	return nil
}

// SelectDataset picks the dataset to overlay and turns the overlay on.
func (s *Session) SelectDataset(id DatasetID) error {
	if _, ok := s.catalog.Dataset(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDataset, string(id))
	}
	s.log.Debug(config.MsgDatasetChosen, config.LogKeyDataset, id)
	s.dataset = id
	s.overlay = true
	s.cleared = false
	s.recompute()
	return nil
}

// SetOverlay toggles the annotation overlay of the selected dataset.
func (s *Session) SetOverlay(enabled bool) {
	s.log.Debug(config.MsgOverlayToggle, config.LogKeyEnabled, enabled)
	s.overlay = enabled
	s.cleared = false
	s.recompute()
}

// Refresh recomputes the elapsed time against the clock, for instance after
// midnight. It does nothing when no birthdate is present.
func (s *Session) Refresh() {
	if s.birth == "" {
		return
	}
	s.log.Debug(config.MsgRefresh)
	_ = s.applyBirthDate(s.birth, false)
}

// State returns a snapshot of the current session.
func (s *Session) State() State {
	st := State{
		BirthDate:   s.birth,
		Err:         s.err,
		Mode:        s.mode,
		Dataset:     s.dataset,
		Overlay:     s.overlay,
		Annotations: s.annotations,
		Rows:        s.rows,
	}
	if s.elapsed != nil {
		e := *s.elapsed
		st.Elapsed = &e
		if sum, err := Summarize(s.mode, e); err == nil {
			st.Summary = &sum
		}
	}
	return st
}

func (s *Session) applyBirthDate(input string, persist bool) error {
	s.birth = input
	s.cleared = false

	now := s.clock.Now()
	birth, err := ParseBirthDate(input, now.Location())
	var elapsed Elapsed
	if err == nil {
		elapsed, err = Between(birth, now)
	}

	if err != nil {
		s.elapsed = nil
		s.err = err
		s.log.Warn(config.MsgBirthRejected,
			config.LogKeyValue, input,
			config.LogKeyError, err)
		s.recompute()
		return err
	}

	s.elapsed = &elapsed
	s.err = nil
	if persist && s.store != nil {
		s.store.Set(config.StoreKeyBirth, birth.Format(config.DateFormatFullDash))
	}

	s.log.Info(config.MsgBirthApplied,
		config.LogKeyYears, elapsed.Years,
		config.LogKeyMonths, elapsed.Months,
		config.LogKeyWeeks, elapsed.Weeks)
	s.recompute()
	return nil
}

// recompute derives the annotation set and grid, then notifies listeners.
func (s *Session) recompute() {
	var dataset *Dataset
	if d, ok := s.catalog.Dataset(s.dataset); ok {
		dataset = d
	}
	s.annotations = NewAnnotationSet(s.mode, dataset, s.overlay && !s.cleared)

	var elapsed Elapsed
	if s.elapsed != nil {
		elapsed = *s.elapsed
	}

	rows, err := BuildGrid(s.mode, elapsed, s.annotations)
	if err != nil {
		// Unreachable: the mode is validated on every entry point.
		s.log.Error(config.ErrUnknownViewMode, config.LogKeyError, err)
		return
	}
	s.rows = rows

	filled, annotated := CountCells(rows)
	s.log.Debug(config.MsgGridBuilt,
		config.LogKeyMode, s.mode,
		config.LogKeyRows, len(rows),
		config.LogKeyFilled, filled,
		config.LogKeyAnnotated, annotated)

	st := s.State()
	for _, fn := range s.listeners {
		fn(st)
	}
}
