// Package logger holds the process-wide zerolog logger of the marketplace
// binaries. cmd/api, cmd/seed and cmd/migrate call Init once with their
// service name; everything else receives a logger by injection or asks Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger built by Init.
type Options struct {
	// Level is LOG_LEVEL: trace, debug, info, warn or error. Anything else
	// logs at info.
	Level string
	// Pretty switches to zerolog's console writer. The API enables it in
	// development or with LOG_PRETTY; production emits one JSON object per line.
	Pretty bool
	// Output defaults to stdout.
	Output io.Writer
	// Service tags every entry, e.g. "marketplace-api" or "marketplace-seed".
	Service string
}

var (
	mu     sync.RWMutex
	once   sync.Once
	root   zerolog.Logger
	active bool
)

// Init builds the logger on its first call and returns it. Later calls
// return the existing logger unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		l := build(opts)
		mu.Lock()
		root, active = l, true
		mu.Unlock()
	})
	return Get()
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	c := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		c = c.Str("service", opts.Service)
	}
	return c.Logger()
}

// Get returns the logger built by Init, or a disabled one when Init has not
// run. Unit tests and library code can therefore log unconditionally.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !active {
		return zerolog.Nop()
	}
	return root
}

// Component returns the logger tagged with a "component" field, so
// background work (audit workers, seeding) can be told apart from requests.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset forgets the current logger so that Init builds a new one. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	root, active = zerolog.Logger{}, false
}

// parseLevel maps LOG_LEVEL to a zerolog level, accepting "warning" as well.
func parseLevel(s string) zerolog.Level {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "warning":
		return zerolog.WarnLevel
	case "trace", "debug", "info", "warn", "error":
		lvl, err := zerolog.ParseLevel(name)
		if err == nil {
			return lvl
		}
	}
	return zerolog.InfoLevel
}
