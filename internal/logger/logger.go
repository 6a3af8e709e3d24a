// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides the process-wide zap logger. Everything is
// written to stderr: stdout carries the MCP stdio transport and must stay
// clean.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// GetLogger returns the shared logger, creating it on first use.
func GetLogger() *zap.Logger {
	once.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		level := zapcore.InfoLevel
		if os.Getenv("ARXIV_MCP_DEBUG") != "" {
			level = zapcore.DebugLevel
		}

		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			level,
		)
		logger = zap.New(core)
	})
	return logger
}
