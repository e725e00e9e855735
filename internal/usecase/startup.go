package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"wbs-desktop/internal/domain"
)

// StartupFile holds the document path handed to the process on launch.
// It is captured once from the arguments and never changes afterwards.
type StartupFile struct {
	mu   sync.RWMutex
	path string
	ok   bool

	announce sync.Once
}

// StartupFromArgs captures args[1] when it ends with suffix. Only that one
// position is inspected; later arguments are ignored.
func StartupFromArgs(args []string, suffix string) *StartupFile {
	sf := &StartupFile{}
	if len(args) > 1 && strings.HasSuffix(args[1], suffix) {
		sf.path = args[1]
		sf.ok = true
	}
	return sf
}

// NewStartupFile returns a StartupFile holding path. An empty path means none.
func NewStartupFile(path string) *StartupFile {
	return &StartupFile{path: path, ok: path != ""}
}

// Path returns the captured path and whether one was captured.
func (s *StartupFile) Path() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path, s.ok
}

// Announce publishes the startup-file event on the first call when a path was
// captured. Subsequent calls do nothing. Reports whether this call published.
func (s *StartupFile) Announce(ctx context.Context, pub domain.EventPublisher) bool {
	if s == nil || pub == nil {
		return false
	}
	published := false
	s.announce.Do(func() {
		path, ok := s.Path()
		if !ok {
			return
		}
		payload, err := json.Marshal(path)
		if err != nil {
			return
		}
		pub.Publish(ctx, domain.Event{
			Type:    domain.EventStartupFile,
			Payload: payload,
		})
		published = true
	})
	return published
}
