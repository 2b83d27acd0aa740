package sqlstore

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/garnizeh/jobly/internal/apperr"
)

// bound is a parsed numeric list filter. ok is false when the filter was not
// supplied.
type bound struct {
	value float64
	ok    bool
}

// parseBound accepts a number strictly greater than 0 with no whitespace.
// upTo, when positive, is an inclusive ceiling.
func parseBound(name, raw string, upTo float64) (bound, error) {
	if raw == "" {
		return bound{}, nil
	}

	msg := name + " must be a number greater than 0"
	if upTo > 0 {
		msg += " and less than or equal to " + strconv.FormatFloat(upTo, 'f', -1, 64)
	}

	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return bound{}, apperr.NewInvalidFilter("%s", msg)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return bound{}, apperr.NewInvalidFilter("%s", msg)
	}
	if upTo > 0 && v > upTo {
		return bound{}, apperr.NewInvalidFilter("%s", msg)
	}

	return bound{value: v, ok: true}, nil
}

// checkRange rejects a lower bound above the upper bound.
func checkRange(minName string, lo bound, maxName string, hi bound) error {
	if lo.ok && hi.ok && lo.value > hi.value {
		return apperr.NewInvalidFilter("%s cannot be greater than %s", minName, maxName)
	}
	return nil
}
