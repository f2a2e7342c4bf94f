package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// FilteredEntry is an Entry that drops typed runes rejected by Accept.
// Pasted text bypasses the filter; callers validate on submit.
type FilteredEntry struct {
	widget.Entry
	Accept func(r rune) bool
}

// NewNumericalEntry accepts digits only.
func NewNumericalEntry() *FilteredEntry {
	return newFilteredEntry(isDigit)
}

// NewDateEntry accepts the characters of an ISO date (digits and dashes).
func NewDateEntry() *FilteredEntry {
	return newFilteredEntry(func(r rune) bool { return isDigit(r) || r == '-' })
}

func newFilteredEntry(accept func(rune) bool) *FilteredEntry {
	entry := &FilteredEntry{Accept: accept}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune forwards r to the embedded Entry when Accept allows it.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.Accept == nil || e.Accept(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices, unless the entry
// accepts dashes, which some numeric keypads lack.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	if e.Accept != nil && e.Accept('-') {
		return mobile.DefaultKeyboard
	}
	return mobile.NumberKeyboard
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
