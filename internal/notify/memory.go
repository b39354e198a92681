package notify

import (
	"sort"
	"strings"
	"sync"
)

// MemoryScheduler is an in-process Scheduler. It backs `routina remind serve`
// when no tray agent is installed and doubles as the collaborator fake in
// tests. The mutex only guards against the cron dispatcher reading while a
// CLI goroutine declares; the core itself is single-writer.
type MemoryScheduler struct {
	mu       sync.Mutex
	triggers map[string]Trigger

	// PermissionGranted mimics the OS permission gate. Defaults to granted.
	denied bool
}

func NewMemoryScheduler() *MemoryScheduler {
	return &MemoryScheduler{triggers: make(map[string]Trigger)}
}

// DenyPermission makes every subsequent call fail with ErrPermissionDenied.
func (s *MemoryScheduler) DenyPermission(denied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denied = denied
}

func (s *MemoryScheduler) Declare(t Trigger) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denied {
		return ErrPermissionDenied
	}
	s.triggers[t.Identifier] = t
	return nil
}

func (s *MemoryScheduler) CancelByIdentifier(identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denied {
		return ErrPermissionDenied
	}
	delete(s.triggers, identifier)
	return nil
}

func (s *MemoryScheduler) CancelByPrefix(prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denied {
		return ErrPermissionDenied
	}
	for id := range s.triggers {
		if strings.HasPrefix(id, prefix) {
			delete(s.triggers, id)
		}
	}
	return nil
}

func (s *MemoryScheduler) ListDeclared() ([]Trigger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denied {
		return nil, ErrPermissionDenied
	}
	out := make([]Trigger, 0, len(s.triggers))
	for _, t := range s.triggers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out, nil
}
