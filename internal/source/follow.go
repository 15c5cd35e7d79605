package source

import (
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/nxadm/tail"

	"inspectgrid/internal/model"
	"inspectgrid/internal/util/logx"
)

type FollowOptions struct {
	Columns  []model.Column
	Interval time.Duration // batching window between snapshots
	Poll     bool          // poll instead of inotify
}

// Follow tails path from its start and delivers a fresh Dataset after
// every batch of new lines. Rows repeating an id replace the earlier row.
// Both channels close when ctx is done or the tail ends.
func Follow(ctx context.Context, path string, opt FollowOptions) (<-chan Dataset, <-chan error) {
	out := make(chan Dataset, 1)
	errs := make(chan error, 16)
	if opt.Interval <= 0 {
		opt.Interval = 250 * time.Millisecond
	}
	go func() {
		defer close(out)
		defer close(errs)
		t, err := tail.TailFile(path, tail.Config{
			Follow:    true,
			ReOpen:    true,
			MustExist: true,
			Logger:    tail.DiscardingLogger,
			Poll:      opt.Poll,
		})
		if err != nil {
			errs <- err
			return
		}
		defer t.Cleanup()
		format := DetectFormat(path)
		b := newBuilder(opt.Columns)
		var header []string
		line := 0
		dirty := false
		ticker := time.NewTicker(opt.Interval)
		defer ticker.Stop()
		report := func(err error) {
			select {
			case errs <- err:
			default:
				logx.Warnf("source: follow error dropped: %v", err)
			}
		}
		for {
			select {
			case <-ctx.Done():
				_ = t.Stop()
				return
			case <-ticker.C:
				if !dirty {
					continue
				}
				select {
				case out <- b.build():
					dirty = false
				case <-ctx.Done():
					_ = t.Stop()
					return
				}
			case l, ok := <-t.Lines:
				if !ok {
					if dirty {
						select {
						case out <- b.build():
						case <-ctx.Done():
						}
					}
					return
				}
				if l.Err != nil {
					report(l.Err)
					continue
				}
				line++
				text := strings.TrimSpace(l.Text)
				if text == "" {
					continue
				}
				var rec record
				if format == FormatNDJSON {
					rec, err = parseJSONLine(line, text)
				} else {
					cells, cerr := csv.NewReader(strings.NewReader(l.Text)).Read()
					if cerr != nil {
						report(cerr)
						continue
					}
					if header == nil {
						header = cells
						b.declare(header)
						continue
					}
					rec, err = csvRecord(line, header, cells)
				}
				if err != nil {
					report(err)
					continue
				}
				b.add(rec)
				dirty = true
			}
		}
	}()
	return out, errs
}
