package httperr

import (
	"errors"
	"net/http"
)

// DefaultFallbackMessage is the client-safe message used by the
// catch-all record when the caller does not supply one.
const DefaultFallbackMessage = "An unexpected error occurred"

// Handler pairs an error predicate with a mapping function. Handlers
// are supplied as an ordered slice at middleware construction and are
// read-only afterwards; the first matching predicate wins.
type Handler struct {
	Match func(error) bool
	Map   func(error) Record
}

// IsType returns a predicate matching errors of type T anywhere in the
// wrapped chain, via errors.As.
func IsType[T error]() func(error) bool {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}

// Classify maps err to its canonical Record.
//
// An APIError anywhere in the chain wins outright. Otherwise handlers
// are scanned in order and the first matching mapper's record is
// returned, normalized. Anything else falls to the catch-all: a 500
// INTERNAL_ERROR record carrying fallbackMessage and nothing of the
// original error, at SeverityCritical.
//
// Classify never panics. A panicking predicate is treated as a
// non-match; a panicking mapper abandons the scan and falls through to
// the catch-all, since caller-supplied classification code must not be
// able to break the error path.
func Classify(err error, handlers []Handler, fallbackMessage string) Record {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Record()
	}

	for _, h := range handlers {
		if h.Match == nil || h.Map == nil {
			continue
		}
		if !safeMatch(h.Match, err) {
			continue
		}
		if rec, ok := safeMap(h.Map, err); ok {
			return rec.normalize()
		}
		break
	}

	if fallbackMessage == "" {
		fallbackMessage = DefaultFallbackMessage
	}
	return Record{
		Code:       CodeInternal,
		Message:    fallbackMessage,
		StatusCode: http.StatusInternalServerError,
		Details:    map[string]any{},
		Severity:   SeverityCritical,
	}
}

func safeMatch(match func(error) bool, err error) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return match(err)
}

func safeMap(mapFn func(error) Record, err error) (rec Record, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return mapFn(err), true
}
