package content

import (
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the write bursts editors produce on save
const reloadDebounce = 100 * time.Millisecond

// Service owns the current content and reloads it when the file changes
// Readers get an immutable snapshot; a reload swaps the pointer
type Service struct {
	path string
	log  *zap.Logger

	content    atomic.Pointer[Content]
	generation atomic.Int64

	changes chan *Content
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// NewService creates a service for path; an empty path serves the embedded default
func NewService(path string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		path:    path,
		log:     log.With(zap.String("component", "content")),
		changes: make(chan *Content, 1),
		stopCh:  make(chan struct{}),
	}
}

// Init loads the initial content
func (s *Service) Init() error {
	if s.path == "" {
		s.content.Store(Default())
		return nil
	}
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.content.Store(c)
	s.log.Info("content loaded", zap.String("path", s.path))
	return nil
}

// Current returns the active snapshot
func (s *Service) Current() *Content {
	return s.content.Load()
}

// Generation counts successful reloads
func (s *Service) Generation() int64 {
	return s.generation.Load()
}

// Changes delivers each reloaded snapshot; only the latest is kept when the reader lags
func (s *Service) Changes() <-chan *Content {
	return s.changes
}

// Watch starts reloading on file changes; no-op for the embedded default
func (s *Service) Watch() error {
	if s.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors often save by rename, which drops a file watch
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}
	s.watcher = w

	s.wg.Add(1)
	go s.watchLoop()
	return nil
}

func (s *Service) watchLoop() {
	defer s.wg.Done()

	target := filepath.Clean(s.path)
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-s.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
			} else {
				debounce.Reset(reloadDebounce)
			}
			fire = debounce.C

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("content watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			s.reload()
		}
	}
}

// Reload re-reads the file now
func (s *Service) Reload() error {
	if s.path == "" {
		return nil
	}
	return s.reload()
}

func (s *Service) reload() error {
	next, err := Load(s.path)
	if err != nil {
		// Keep serving the last good snapshot
		s.log.Warn("content reload failed", zap.Error(err))
		return err
	}

	prev := s.content.Swap(next)
	gen := s.generation.Add(1)
	if prev != nil && !reflect.DeepEqual(prev.Work.Projects, next.Work.Projects) {
		s.log.Info("carousel projects changed; they apply on next start")
	}
	s.log.Info("content reloaded", zap.Int64("generation", gen))

	// Latest wins: drop a snapshot the reader has not taken yet
	select {
	case <-s.changes:
	default:
	}
	select {
	case s.changes <- next:
	default:
	}
	return nil
}

// Stop ends watching and waits for the watch goroutine
func (s *Service) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
	if s.watcher != nil {
		s.watcher.Close()
	}
}
