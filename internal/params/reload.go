// SPDX-License-Identifier: MIT

package params

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	xglog "github.com/ManuGH/scicomp/internal/log"
	"github.com/ManuGH/scicomp/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultDebounce is how long Watch waits after the last file event before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Holder keeps the last successfully loaded bundle for one options file and
// supports hot reloading it. A failed reload keeps the previous bundle.
type Holder struct {
	mu      sync.RWMutex
	current *Bundle
	loader  *Loader
	logger  zerolog.Logger

	// Debounce is the quiet period Watch waits for before reloading.
	Debounce time.Duration

	// Reload notifications
	listenersMu sync.RWMutex
	listeners   []chan<- *Bundle

	errLog rate.Sometimes
}

// NewHolder loads the options file once and returns a holder for it.
func NewHolder(loader *Loader) (*Holder, error) {
	initial, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return &Holder{
		current:  initial,
		loader:   loader,
		logger:   xglog.WithComponent("params"),
		Debounce: DefaultDebounce,
		errLog:   rate.Sometimes{Interval: 5 * time.Second},
	}, nil
}

// Get returns the current bundle (thread-safe read).
func (h *Holder) Get() *Bundle {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload loads the options file again. On success the new bundle replaces
// the current one and listeners are notified; on failure nothing changes.
func (h *Holder) Reload(_ context.Context) error {
	h.logger.Info().Str(xglog.FieldEvent, "params.reload_start").Msg("reloading options file")

	next, err := h.loader.Load()
	if err != nil {
		metrics.RecordParamsReload(false)
		h.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "params.reload_failed").
			Str(xglog.FieldPath, h.loader.Path()).
			Msg("failed to reload options file, keeping previous parameters")
		return fmt.Errorf("reload options: %w", err)
	}

	h.mu.Lock()
	h.current = next
	h.mu.Unlock()

	metrics.RecordParamsReload(true)
	h.notifyListeners(next)

	h.logger.Info().
		Str(xglog.FieldEvent, "params.reload_success").
		Msg("options file reloaded successfully")
	return nil
}

// RegisterListener registers a channel to receive reloaded bundles.
// Sends never block; a listener that is not ready misses that update.
// The caller is responsible for closing the channel.
func (h *Holder) RegisterListener(ch chan<- *Bundle) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notifyListeners(b *Bundle) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- b:
		default:
			h.logger.Warn().
				Str(xglog.FieldEvent, "params.listener_dropped").
				Msg("reload listener not ready, dropping notification")
		}
	}
}

// Watch reloads the options file whenever it changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up. Watch blocks; run it in its own goroutine.
func (h *Holder) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := h.loader.Path()
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch options directory: %w", err)
	}

	h.logger.Info().
		Str(xglog.FieldEvent, "params.watcher_started").
		Str(xglog.FieldPath, target).
		Msg("watching options file for changes")

	debounce := h.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xglog.FieldEvent, "params.watcher_stopped").Msg("options watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			h.logger.Debug().
				Str(xglog.FieldEvent, "params.file_changed").
				Str("op", event.Op.String()).
				Msg("options file changed")
			timer.Reset(debounce)

		case <-timer.C:
			// failures are logged and counted by Reload
			_ = h.Reload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.errLog.Do(func() {
				h.logger.Error().
					Err(err).
					Str(xglog.FieldEvent, "params.watcher_error").
					Msg("options watcher error")
			})
		}
	}
}
