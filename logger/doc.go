// Package logger provides structured logging for pktchain using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("descriptor")
//	log.Info("chain built", logger.Fields(logger.FieldDescriptor, "tok,concat"))
package logger
