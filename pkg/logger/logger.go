package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// Init builds the global logger. Production emits JSON, everything else a
// human readable console encoder.
func Init(env, level string) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(lvl)

	l, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	Set(l)
	l.Info("Logger initialized", zap.String("env", env), zap.String("level", lvl.String()))
	return l
}

// Set replaces the global logger. Tests use it to install zap.NewNop.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// L returns the global logger, falling back to a no-op logger before Init
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Sync flushes buffered entries
func Sync() {
	_ = L().Sync()
}
