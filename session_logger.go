package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SessionLogger writes a structured transcript of the session to a log
// file: turns, extraction counts, executed commands, and backend
// failures. It never writes to the interactive terminal, and a nil
// logger is safe to call so callers need no guards.
type SessionLogger struct {
	logger *zap.Logger
}

// NewSessionLogger creates a logger writing JSON lines to
// <logDir>/session.log.
func NewSessionLogger(logDir string) (*SessionLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(logDir, "session.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build session logger: %v", err)
	}
	return &SessionLogger{logger: logger}, nil
}

// SessionStarted records the start of an interactive session.
func (l *SessionLogger) SessionStarted(shell ShellType, model string) {
	if l == nil {
		return
	}
	l.logger.Info("session started",
		zap.String("shell", string(shell)),
		zap.String("model", model),
	)
}

// SessionEnded records the end of an interactive session.
func (l *SessionLogger) SessionEnded() {
	if l == nil {
		return
	}
	l.logger.Info("session ended")
}

// Turn records one conversation turn. Only the length of the content is
// logged; the transcript is diagnostics, not conversation persistence.
func (l *SessionLogger) Turn(role, content string) {
	if l == nil {
		return
	}
	l.logger.Info("turn", zap.String("role", role), zap.Int("chars", len(content)))
}

// CommandsExtracted records how many candidates one extraction pass found.
func (l *SessionLogger) CommandsExtracted(count int) {
	if l == nil {
		return
	}
	l.logger.Info("commands extracted", zap.Int("count", count))
}

// CommandExecuted records one mediated command execution.
func (l *SessionLogger) CommandExecuted(command string, result ExecutionResult) {
	if l == nil {
		return
	}
	l.logger.Info("command executed",
		zap.String("command", command),
		zap.Int("stdout_bytes", len(result.Stdout)),
		zap.Int("stderr_bytes", len(result.Stderr)),
	)
}

// BackendFailure records a failed backend operation.
func (l *SessionLogger) BackendFailure(operation string, err error) {
	if l == nil {
		return
	}
	l.logger.Warn("backend failure", zap.String("operation", operation), zap.Error(err))
}

// Warn records a non-fatal internal problem.
func (l *SessionLogger) Warn(message string, err error) {
	if l == nil {
		return
	}
	l.logger.Warn(message, zap.Error(err))
}

// Close flushes any buffered log entries.
func (l *SessionLogger) Close() {
	if l == nil {
		return
	}
	l.logger.Sync()
}
