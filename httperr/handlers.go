package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ValidationHandler maps validator.ValidationErrors to a 422 record
// with one detail entry per failing field.
func ValidationHandler() Handler {
	return Handler{
		Match: IsType[validator.ValidationErrors](),
		Map: func(err error) Record {
			var verrs validator.ValidationErrors
			errors.As(err, &verrs)
			fields := make([]map[string]any, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, map[string]any{
					"field": fe.Field(),
					"rule":  fe.Tag(),
				})
			}
			return Record{
				Code:       CodeValidation,
				Message:    "Request validation failed",
				StatusCode: http.StatusUnprocessableEntity,
				Details:    map[string]any{"fields": fields},
				Severity:   SeverityWarn,
			}
		},
	}
}

// JSONBodyHandler maps request body decode failures from encoding/json
// to a 400 record. The decoder's own message names offsets and types,
// not request content, so it is safe to surface.
func JSONBodyHandler() Handler {
	return Handler{
		Match: func(err error) bool {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
		},
		Map: func(err error) Record {
			return Record{
				Code:       CodeMalformedBody,
				Message:    "Request body is not valid JSON",
				StatusCode: http.StatusBadRequest,
				Details:    map[string]any{"reason": err.Error()},
				Severity:   SeverityWarn,
			}
		},
	}
}

// DeadlineHandler maps context.DeadlineExceeded from downstream calls
// to a 504 record. Cancellation of the inbound request itself never
// reaches dispatch; the adapters pass it through.
func DeadlineHandler() Handler {
	return Handler{
		Match: func(err error) bool {
			return errors.Is(err, context.DeadlineExceeded)
		},
		Map: func(err error) Record {
			return Record{
				Code:       CodeTimeout,
				Message:    "The request took too long. Please try again.",
				StatusCode: http.StatusGatewayTimeout,
				Severity:   SeverityError,
			}
		},
	}
}
