// Package logger builds configured slog.Logger instances with
// environment-aware defaults and context-driven attribute injection.
package logger
