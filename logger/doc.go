// Package logger provides structured logging for httpkit using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// context enrichment: loggers derived with WithContext pick up the
// ambient request id and the active trace span automatically.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("my-service").WithComponent("handler")
//	log.Info("operation completed", logger.Fields("key", "value"))
package logger
