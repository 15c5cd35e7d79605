package logx

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var (
	mu       sync.Mutex
	atom     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sink     = &tailSink{max: 500}
	extra    []zapcore.WriteSyncer
	logger   *zap.SugaredLogger
	// default to no stderr output to avoid breaking TUIs; enable via INSPECTGRID_LOG_STDERR=1
	toStderr = false
)

func init() { rebuild() }

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// rebuild must be called with mu held (or from init).
func rebuild() {
	ws := []zapcore.WriteSyncer{sink}
	if toStderr {
		ws = append(ws, zapcore.Lock(os.Stderr))
	}
	ws = append(ws, extra...)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.NewMultiWriteSyncer(ws...), atom)
	logger = zap.New(core).Sugar()
}

func SetLevel(l Level) {
	switch l {
	case Debug:
		atom.SetLevel(zapcore.DebugLevel)
	case Info:
		atom.SetLevel(zapcore.InfoLevel)
	case Warn:
		atom.SetLevel(zapcore.WarnLevel)
	default:
		atom.SetLevel(zapcore.ErrorLevel)
	}
}

func SetLevelFromEnv() {
	lv := strings.ToLower(strings.TrimSpace(os.Getenv("INSPECTGRID_LOG_LEVEL")))
	switch lv {
	case "debug":
		SetLevel(Debug)
	case "info":
		SetLevel(Info)
	case "warn", "warning":
		SetLevel(Warn)
	case "error":
		SetLevel(Error)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("INSPECTGRID_LOG_STDERR"))); v != "" {
		mu.Lock()
		toStderr = v != "0" && v != "false" && v != "no"
		rebuild()
		mu.Unlock()
	}
}

// AddOutput mirrors every record to w (e.g. a log file).
func AddOutput(w zapcore.WriteSyncer) {
	mu.Lock()
	defer mu.Unlock()
	extra = append(extra, w)
	rebuild()
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func Debugf(format string, a ...any) { current().Debugf(format, a...) }
func Infof(format string, a ...any)  { current().Infof(format, a...) }
func Warnf(format string, a ...any)  { current().Warnf(format, a...) }
func Errorf(format string, a ...any) { current().Errorf(format, a...) }

// Sync flushes any buffered outputs.
func Sync() { _ = current().Sync() }

func Dump() string {
	return strings.Join(sink.lines(), "\n")
}

func Lines() []string {
	return sink.lines()
}

// tailSink keeps the last max encoded lines in memory.
type tailSink struct {
	mu  sync.Mutex
	buf []string
	max int
}

func (s *tailSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if len(s.buf) >= s.max {
			// drop oldest
			copy(s.buf[0:], s.buf[1:])
			s.buf = s.buf[:len(s.buf)-1]
		}
		s.buf = append(s.buf, line)
	}
	return len(p), nil
}

func (s *tailSink) Sync() error { return nil }

func (s *tailSink) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.buf))
	copy(out, s.buf)
	return out
}
