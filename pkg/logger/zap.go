package logger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/internal/constant"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var zapLogger *zap.Logger

// initLogger initializes the Zap logger with the given configuration
func initLogger(cfg config.LoggerConfig) *zap.Logger {
	level := getLogLevel(cfg.Level, cfg.Environment)

	prodEncoderCfg := zap.NewProductionEncoderConfig()
	prodEncoderCfg.TimeKey = "timestamp"
	prodEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	prodEncoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	devEncoderCfg := zap.NewDevelopmentEncoderConfig()
	devEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	devEncoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	var cores []zapcore.Core

	if cfg.FilePath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			LocalTime:  cfg.LocalTime,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(prodEncoderCfg), fileWriter, level))
	}

	// Colorful console outside production, JSON on stdout when no file is configured
	switch {
	case cfg.Environment != "production":
		consoleWriter := zapcore.AddSync(os.Stdout)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(devEncoderCfg), consoleWriter, level))
	case cfg.FilePath == "":
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(prodEncoderCfg), zapcore.AddSync(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// getLogLevel returns the appropriate log level based on configuration
func getLogLevel(levelStr string, env string) zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(levelStr)
	if env == "production" {
		if err != nil || level.Level() < zapcore.InfoLevel {
			fmt.Fprintf(
				os.Stderr,
				"[Logger] ⚠️  Log level '%s' not allowed in production. Fallback to INFO\n",
				levelStr,
			)
			return zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
		return level
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "[Logger] ⚠️  Invalid log level '%s', fallback to INFO\n", levelStr)
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return level
}

// GetLogger returns the singleton logger instance
func GetLogger(cfg config.LoggerConfig) *zap.Logger {
	if zapLogger == nil {
		zapLogger = initLogger(cfg)
	}
	return zapLogger
}

// FromContext returns the global logger tagged with the request correlation ID, if any.
func FromContext(ctx context.Context) *zap.Logger {
	return WithCorrelationID(zap.L(), CorrelationID(ctx))
}

// CorrelationID returns the correlation ID stored by the correlation middleware.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(constant.CorrelationIDKey).(string)
	return id
}

// WithCorrelationID adds correlation ID to the logger
func WithCorrelationID(logger *zap.Logger, correlationID string) *zap.Logger {
	if correlationID != "" {
		return logger.With(zap.String("correlation_id", correlationID))
	}
	return logger
}

// WithRequest adds HTTP request information to the logger
func WithRequest(logger *zap.Logger, req *http.Request) *zap.Logger {
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("remoteAddr", req.RemoteAddr),
		zap.String("userAgent", req.UserAgent()),
	}

	if req.Referer() != "" {
		fields = append(fields, zap.String("referer", req.Referer()))
	}

	return logger.With(fields...)
}

// WithUpstream adds outgoing backend call information to the logger
func WithUpstream(logger *zap.Logger, req *http.Request, statusCode int, duration time.Duration) *zap.Logger {
	return logger.With(
		zap.String("upstreamMethod", req.Method),
		zap.String("upstreamHost", req.URL.Host),
		zap.String("upstreamPath", req.URL.Path),
		zap.Int("upstreamStatus", statusCode),
		zap.Duration("upstreamDuration", duration),
	)
}

// WithSession adds the (truncated) session identifier to the logger
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	return logger.With(zap.String("session", sessionID))
}

// WithUser adds user information to the logger
func WithUser(logger *zap.Logger, userID string) *zap.Logger {
	return logger.With(zap.String("userId", userID))
}

// WithComponent adds component information to the logger
func WithComponent(logger *zap.Logger, component string) *zap.Logger {
	return logger.With(zap.String("component", component))
}

// Sync flushes any buffered log entries
func Sync() error {
	if zapLogger != nil {
		return zapLogger.Sync()
	}
	return nil
}
