// Package format renders catalog values for display.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorUnitsPerMajor converts stored prices (smallest currency unit) to the
// displayed major unit.
const MinorUnitsPerMajor = 100

// Printer returns a message printer for a BCP 47 locale, falling back to
// English when the tag doesn't parse.
func Printer(locale string) *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Price formats a price given in minor units as a grouped whole-unit label.
// Fractions of a major unit are dropped.
func Price(p *message.Printer, minor int64, symbol string) string {
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return sign + symbol + p.Sprintf("%d", minor/MinorUnitsPerMajor)
}
