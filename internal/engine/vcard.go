package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/life-grid/internal/config"
)

// BirthDateFromVCard returns the first BDAY with a known year found in the
// card stream, formatted as 2006-01-02. Cards without a year are skipped.
func BirthDateFromVCard(r io.Reader) (string, error) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseDate(bday.Value)
		if err != nil || !yearKnown {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}

		value := birth.Format(config.DateFormatFullDash)
		log.Info(config.MsgImported, config.LogKeyValue, value)
		return value, nil
	}

	return "", ErrNoBirthDate
}
