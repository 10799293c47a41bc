package middleware

import "log/slog"

// SlogAdapter bridges CORSLogger to log/slog.
type SlogAdapter struct {
	Logger *slog.Logger
}

func (a *SlogAdapter) Info(msg string, fields map[string]interface{})  { a.log(a.Logger.Info, msg, fields) }
func (a *SlogAdapter) Warn(msg string, fields map[string]interface{})  { a.log(a.Logger.Warn, msg, fields) }
func (a *SlogAdapter) Debug(msg string, fields map[string]interface{}) { a.log(a.Logger.Debug, msg, fields) }

func (a *SlogAdapter) log(fn func(string, ...any), msg string, fields map[string]interface{}) {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	fn(msg, args...)
}

// NoOpLogger discards all CORS log events. Used in tests.
type NoOpLogger struct{}

func (l *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (l *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}
