// Package logger provides structured logging for infiniter using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("eval")
//	log.Info("query evaluated", logger.Fields(logger.FieldGenerator, "primes", logger.FieldPulls, 5))
package logger
