// Package diag routes rules-engine diagnostics to the process logger.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/pushfight/game/engine"
)

// NewLogger builds the process logger. Output goes to stderr so stdout stays
// free for the MCP stdio transport.
func NewLogger(level, format string) (*logrus.Logger, error) {
	return newLogger(os.Stderr, level, format)
}

func newLogger(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q: use text or json", format)
	}
	return log, nil
}

// LogrusSink writes engine diagnostics to a logrus logger. Rejections are
// logged at debug level, applied moves at info.
type LogrusSink struct {
	log logrus.FieldLogger
}

// NewLogrusSink returns a sink writing to log.
func NewLogrusSink(log logrus.FieldLogger) *LogrusSink {
	return &LogrusSink{log: log}
}

func (s *LogrusSink) Record(d engine.Diagnostic) {
	entry := s.log.WithFields(logrus.Fields{
		"reason": string(d.Reason),
		"from":   d.From.String(),
		"to":     d.To.String(),
	})
	if d.Reason.IsRejection() {
		entry.Debug(d.Message)
		return
	}
	entry.Info(d.Message)
}

// Recorder keeps diagnostics in memory.
type Recorder struct {
	mu  sync.Mutex
	got []engine.Diagnostic
}

func (r *Recorder) Record(d engine.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (r *Recorder) Diagnostics() []engine.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]engine.Diagnostic, len(r.got))
	copy(out, r.got)
	return out
}

// Reset drops all recorded diagnostics.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = nil
}

type tee []engine.Sink

func (t tee) Record(d engine.Diagnostic) {
	for _, s := range t {
		s.Record(d)
	}
}

// Tee returns a sink that forwards to every non-nil sink in order.
func Tee(sinks ...engine.Sink) engine.Sink {
	var out tee
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
