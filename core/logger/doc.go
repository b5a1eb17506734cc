// Package logger builds the zap logger used across the service.
//
// Level "debug" selects zap's development config; any other level selects the
// production config at that level. Format is "console" or "json".
//
// Request handlers derive a child logger with WithRayID so that every line
// written while serving a request (API call or gateway read) carries its ray_id.
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(log, c)
//	l.Warn("Fill failed", zap.Error(err))
package logger
