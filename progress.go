package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/b97tsk/rx"
	"github.com/b97tsk/rx/operators"
)

const _progressInterval = time.Second

// _Progress renders the number of scanned rows on a status line. Row
// counts are pushed into a multicast subject, summed and sampled once per
// interval.
type _Progress struct {
	rows   rx.Subject
	done   chan struct{}
	cancel context.CancelFunc
}

func _newProgress(w io.Writer, total int64, interval time.Duration) *_Progress {
	ctx, cancel := context.WithCancel(context.Background())
	p := &_Progress{
		rows:   rx.Multicast(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	p.rows.Observable.Pipe(
		operators.Scan(
			func(acc, val interface{}, idx int) interface{} {
				return acc.(int64) + val.(int64)
			},
		),
		operators.SampleTime(interval),
	).Subscribe(ctx, func(t rx.Notification) {
		if !t.HasValue {
			fprint(w, "\033[1K\r")
			close(p.done)
			return
		}
		done := t.Value.(int64)
		percent := 0
		if total > 0 {
			percent = int(float64(done) / float64(total) * 100)
		}
		fprint(w, "\033[1K\r")
		fprintf(w, "scanning rows... %v%% (%v/%v)", percent, done, total)
	})

	return p
}

// Add is safe for concurrent use.
func (p *_Progress) Add(rows int64) {
	p.rows.Next(rows)
}

func (p *_Progress) Done() {
	p.rows.Complete()
	<-p.done
	p.cancel()
}

func _newLogger(level, format string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: l}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
