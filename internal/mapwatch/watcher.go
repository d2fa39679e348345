// Package mapwatch discovers robot message files dropped into a directory
// and feeds each one through the wire decoder. The robot-side bridge writes
// one complete, already-delimited message per file; this watcher is the
// "file-change notifier" collaborator in front of wire.Decode.
package mapwatch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/banshee-data/groundlink/internal/fsutil"
	"github.com/banshee-data/groundlink/internal/monitoring"
	"github.com/banshee-data/groundlink/internal/wire"
)

// DefaultPollInterval is how often the watched directory is rescanned when
// the caller does not choose an interval.
const DefaultPollInterval = 500 * time.Millisecond

// Sink receives every message the watcher successfully decodes. The path is
// the file the message came from.
type Sink func(path string, msg wire.Message)

// Watcher polls a directory for new or updated message files, decodes them,
// and hands the results to a sink. Files that fail to decode are logged and
// skipped; one corrupt file must not stall the feed.
type Watcher struct {
	fs       fsutil.FileSystem
	dir      string
	interval time.Duration
	sink     Sink

	// seen tracks mod time and size per file so unchanged files are not
	// re-decoded on every poll.
	seen map[string]fileStamp
}

type fileStamp struct {
	modTime time.Time
	size    int64
}

// New creates a watcher over dir. A zero interval selects
// DefaultPollInterval.
func New(filesystem fsutil.FileSystem, dir string, interval time.Duration, sink Sink) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		fs:       filesystem,
		dir:      dir,
		interval: interval,
		sink:     sink,
		seen:     make(map[string]fileStamp),
	}
}

// Watch polls the directory until the context is cancelled. The first scan
// delivers every existing file, so a station restart replays the current
// on-disk state to its consumers.
func (w *Watcher) Watch(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Scan()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan performs one pass over the directory, decoding any file that is new
// or has changed since the previous pass. It returns the number of messages
// delivered to the sink.
func (w *Watcher) Scan() int {
	entries, err := w.fs.ReadDir(w.dir)
	if err != nil {
		monitoring.Logf("mapwatch: cannot read %s: %v", w.dir, err)
		return 0
	}

	delivered := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			monitoring.Logf("mapwatch: cannot stat %s: %v", path, err)
			continue
		}
		if !w.changed(path, info) {
			continue
		}

		buf, err := w.fs.ReadFile(path)
		if err != nil {
			monitoring.Logf("mapwatch: cannot read %s: %v", path, err)
			continue
		}

		msg, err := wire.Decode(buf)
		if err != nil {
			// Remember the bad file anyway so it is not re-reported on
			// every poll; a rewrite will change its stamp and retry it.
			w.seen[path] = stampOf(info)
			monitoring.Logf("mapwatch: cannot decode %s: %v", path, err)
			continue
		}

		w.seen[path] = stampOf(info)
		w.sink(path, msg)
		delivered++
	}
	return delivered
}

// changed reports whether the file is new or differs from the recorded
// stamp.
func (w *Watcher) changed(path string, info fs.FileInfo) bool {
	prev, ok := w.seen[path]
	if !ok {
		return true
	}
	stamp := stampOf(info)
	return !stamp.modTime.Equal(prev.modTime) || stamp.size != prev.size
}

func stampOf(info fs.FileInfo) fileStamp {
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}
