// Package chix is the chi / net/http host adapter for httperr.
// ErrorMiddleware recovers panics anywhere in a chi (or plain
// net/http) chain, and Handler adapts error-returning handler
// functions. Both render the standard JSON error envelope.
package chix
