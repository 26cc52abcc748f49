package common

import (
	"fmt"
	"strings"

	"github.com/rck/unit"
)

// MinSize is the smallest block store size accepted.
const MinSize = 1 << 20

var sizeUnit = newSizeUnit()

// Emulab reads "GB" as 1024^3, so the decimal looking suffixes are aliases
// of the binary ones here as well. Names are upper case, input is upper
// cased before parsing.
func newSizeUnit() *unit.Unit {
	units := map[string]int64{"B": 1}
	for _, prefix := range []string{"K", "M", "G", "T", "P", "E"} {
		units[prefix] = unit.DefaultUnits[prefix]
		units[prefix+"IB"] = unit.DefaultUnits[prefix]
		units[prefix+"B"] = unit.DefaultUnits[prefix]
	}

	return unit.MustNewUnit(units)
}

// ParseSize parses a human readable size such as "200GB", "200gb" or
// "1TiB" into bytes. A number without a unit is taken as gigabytes.
func ParseSize(raw string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s != "" && strings.TrimLeft(s, "+-0123456789") == "" {
		s += "G"
	}

	v, err := sizeUnit.ValueFromString(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse size '%s': %w", raw, err)
	}

	if v.Value < MinSize {
		return 0, fmt.Errorf("size '%s' is below the minimum of %s", raw, FormatSize(MinSize))
	}

	return v.Value, nil
}

// FormatSize renders a byte count in the notation used by RSpec block
// stores, picking the largest unit that divides the size evenly.
func FormatSize(bytes int64) string {
	for _, prefix := range []string{"T", "G", "M", "K"} {
		factor := unit.DefaultUnits[prefix]
		if bytes >= factor && bytes%factor == 0 {
			return fmt.Sprintf("%d%sB", bytes/factor, prefix)
		}
	}

	return fmt.Sprintf("%dB", bytes)
}

// GigaBytes renders n gigabytes in RSpec notation.
func GigaBytes(n int) string {
	return fmt.Sprintf("%dGB", n)
}
