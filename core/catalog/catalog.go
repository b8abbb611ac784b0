// Package catalog enumerates the track files of the tracks directory.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fevertracker/logger"
	"fevertracker/model"

	"github.com/fsnotify/fsnotify"
)

// ErrInvalidSelection is returned for an index outside [1, len(ids)].
var ErrInvalidSelection = errors.New("invalid track selection")

// Catalog lists the tracks stored in one directory. Without a running
// watcher every call to Tracks lists the directory again.
type Catalog struct {
	dir string

	mu       sync.Mutex
	watching bool
	stale    bool
	cached   []model.TrackID
}

// New returns a catalog over dir.
func New(dir string) *Catalog {
	return &Catalog{dir: dir, stale: true}
}

// Tracks returns the track identifiers in directory listing order.
func (c *Catalog) Tracks() ([]model.TrackID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watching && !c.stale {
		return append([]model.TrackID(nil), c.cached...), nil
	}
	ids, err := c.list()
	if err != nil {
		return nil, err
	}
	c.cached = ids
	c.stale = false
	return append([]model.TrackID(nil), ids...), nil
}

func (c *Catalog) list() ([]model.TrackID, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks in %s: %w", c.dir, err)
	}
	ids := make([]model.TrackID, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), model.TrackExt) {
			continue
		}
		ids = append(ids, model.ParseTrackID(filepath.Join(c.dir, e.Name())))
	}
	return ids, nil
}

// Invalidate forces the next call to Tracks to list the directory.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Watch caches the listing and drops the cache whenever the directory changes.
// It returns once the watcher is registered; the watcher stops when ctx is done.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", c.dir, err)
	}

	c.mu.Lock()
	c.watching = true
	c.stale = true
	c.mu.Unlock()

	go func() {
		defer watcher.Close()
		defer func() {
			c.mu.Lock()
			c.watching = false
			c.mu.Unlock()
		}()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Debug("catalog changed", logger.String("file", event.Name))
					c.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", logger.ErrorField(err))
				c.Invalidate()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Resolve maps a 1-based user index onto ids.
func Resolve(ids []model.TrackID, index int) (model.TrackID, error) {
	if index < 1 || index > len(ids) {
		return model.TrackID{}, fmt.Errorf("%w: %d (choose 1-%d)", ErrInvalidSelection, index, len(ids))
	}
	return ids[index-1], nil
}
