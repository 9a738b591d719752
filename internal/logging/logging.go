// Package logging wires goosint's diagnostic logger.
//
// Diagnostics go to stderr through zap. User-facing investigation output is
// rendered by the console package and never passes through here.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how Init builds the root logger.
type Options struct {
	Level  string    // debug, info, warn, error; defaults to warn
	Format string    // console or json; defaults to console
	Writer io.Writer // defaults to os.Stderr
}

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init replaces the root logger. It is safe to call more than once; tests do.
func Init(opts Options) *zap.Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "json":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), parseLevel(opts.Level))
	logger := zap.New(core)

	mu.Lock()
	root = logger
	mu.Unlock()
	return logger
}

// New returns a logger scoped to one component.
func New(component string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With(zap.String("component", component))
}

// Sync flushes the root logger. Errors from syncing stderr are ignored.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

func parseLevel(s string) zapcore.Level {
	if s == "" {
		return zapcore.WarnLevel
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}
