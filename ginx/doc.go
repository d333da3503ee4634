// Package ginx is the Gin host adapter for httperr. ErrorMiddleware
// converts panics and handler-reported errors into the standard JSON
// error envelope, and RequestID issues and propagates X-Request-Id.
package ginx
