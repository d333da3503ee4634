package httperr

import (
	"errors"

	"github.com/skillsenselab/httpkit/logger"
)

// Log emits rec at its severity with error_code and status_code
// fields. Critical records additionally carry the original error, its
// unwrap chain, and the stack captured at the recovery point.
//
// Logging is best-effort: a panicking sink is swallowed so it can
// never block the response from being sent.
func Log(log *logger.Logger, rec Record, cause error, stack []byte) {
	defer func() {
		_ = recover()
	}()

	if log == nil {
		log = logger.GetGlobalLogger()
	}

	fields := map[string]interface{}{
		logger.FieldErrorCode:  rec.Code,
		logger.FieldStatusCode: rec.StatusCode,
	}

	switch rec.Severity {
	case SeverityCritical:
		if cause != nil {
			fields[logger.FieldError] = cause.Error()
			if chain := errorChain(cause); len(chain) > 1 {
				fields[logger.FieldErrorChain] = chain
			}
		}
		if len(stack) > 0 {
			fields[logger.FieldStack] = string(stack)
		}
		log.Critical("Unexpected error", fields)
	case SeverityError:
		log.Error(rec.Message, fields)
	default:
		log.Warn(rec.Message, fields)
	}
}

// errorChain collects the messages of err and every wrapped cause,
// outermost first.
func errorChain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}
