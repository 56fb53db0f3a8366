// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr by default so that CLI output on stdout stays clean. The
// output may also be stdout or a log file.
//
// Example Usage:
//
//	logger, err := logging.New(logging.ConfigFor(cfg.Logging.Level, cfg.Logging.Development, cfg.Logging.Output))
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Failed to resolve path", zap.Error(err))
package logging
