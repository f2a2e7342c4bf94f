package export

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
)

// SummaryFunc renders the SUMMARY of a milestone event. The UI injects a
// localized version.
type SummaryFunc func(e engine.AnnotationEntry) string

// DefaultSummary is used when no SummaryFunc is supplied.
func DefaultSummary(e engine.AnnotationEntry) string {
	return fmt.Sprintf(config.FallbackEventSummary, e.Name, e.Age)
}

// MilestoneDate returns the day the user reaches the grid position of e.
func MilestoneDate(birth time.Time, e engine.AnnotationEntry) time.Time {
	y, m, d := birth.Date()
	return time.Date(y, m, d+e.Index*config.DaysPerWeek, 0, 0, 0, 0, birth.Location())
}

// Calendar writes one all-day event per entry, dated birth + Index weeks.
// UIDs are derived from the entry and stay stable across exports.
func Calendar(w io.Writer, birth time.Time, entries []engine.AnnotationEntry, clock engine.Clock, summary SummaryFunc) error {
	if len(entries) == 0 {
		return errors.New(config.ErrNothingToExport)
	}
	if summary == nil {
		summary = DefaultSummary
	}
	if clock == nil {
		clock = engine.RealClock{}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(clock.Now().UTC())

	for _, e := range entries {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(e))
		event.Props.SetText(config.PropSummary, summary(e))
		event.Props.SetText(config.PropDescription, e.Text)
		// COLOR only takes CSS color names; dataset colors are hex triplets.
		if e.Color != "" {
			event.Props.SetText(config.PropXColor, e.Color)
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(MilestoneDate(birth, e))
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgExported,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyFormat, config.ExtICS,
		config.LogKeyCount, len(entries))
	return nil
}

func eventUID(e engine.AnnotationEntry) string {
	input := fmt.Sprintf(config.FormatHashInput, e.Name, e.Index, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
