// Package util contains small shared helpers.
package util

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/shenavaapp/shenava-client/internal/normalize"
)

// persianUnits are the display units for FormatSizeFa, smallest first.
//
//nolint:gochecknoglobals // Static display table.
var persianUnits = []string{"بایت", "کیلوبایت", "مگابایت", "گیگابایت", "ترابایت"}

// FormatSize renders a byte count as a short human-readable string
// ("456 MB"). Used in logs and the inspection CLI.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatSizeFa renders a byte count for the Persian UI: decimal units,
// one fractional digit above bytes, Extended Arabic-Indic numerals.
func FormatSizeFa(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	value := float64(bytes)
	unit := 0
	for value >= 1000 && unit < len(persianUnits)-1 {
		value /= 1000
		unit++
	}

	var s string
	if unit == 0 {
		s = fmt.Sprintf("%d %s", bytes, persianUnits[0])
	} else {
		s = fmt.Sprintf("%.1f %s", value, persianUnits[unit])
	}
	return normalize.PersianDigits(s)
}
