package aggregate

import (
	"errors"
	"fmt"

	"github.com/corey/secframe/internal/ports"
)

var errNoTimestamp = errors.New("record has no timestamp")

// ByQuarter keys records as "2023-Q3".
func ByQuarter(sr ports.ScoredRecord) (string, error) {
	if sr.Timestamp.IsZero() {
		return "", errNoTimestamp
	}
	q := (int(sr.Timestamp.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", sr.Timestamp.Year(), q), nil
}

// ByMonth keys records as "2023-08".
func ByMonth(sr ports.ScoredRecord) (string, error) {
	if sr.Timestamp.IsZero() {
		return "", errNoTimestamp
	}
	return sr.Timestamp.Format("2006-01"), nil
}

// ByYear keys records as "2023".
func ByYear(sr ports.ScoredRecord) (string, error) {
	if sr.Timestamp.IsZero() {
		return "", errNoTimestamp
	}
	return sr.Timestamp.Format("2006"), nil
}

// PeriodKey resolves a period name to its key function.
func PeriodKey(name string) (KeyFunc, error) {
	switch name {
	case "quarter":
		return ByQuarter, nil
	case "month":
		return ByMonth, nil
	case "year":
		return ByYear, nil
	default:
		return nil, fmt.Errorf("unknown period %q (want quarter, month, or year)", name)
	}
}
