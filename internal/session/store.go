package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/editor"
	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/metrics"
	"resourceEditorAPI/internal/models"
	"resourceEditorAPI/internal/notify"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrInvalidForm = errors.New("invalid form model")
)

// Session is one open editor page.
type Session struct {
	ID            string
	Identity      models.Identity
	Operator      string
	Editor        Editor
	Notifications *notify.Recorder
	Load          *editor.Load
	Translator    i18n.Translator
	Created       time.Time

	cancel context.CancelFunc
	unbind func()
}

func (s *Session) close() {
	s.cancel()
	s.unbind()
}

// Store holds sessions in memory, keyed by a random id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	fetcher editor.Fetcher
	samples editor.SampleProvider
	catalog *i18n.Catalog
	policy  editor.DuplicateKeyPolicy
	logger  *zap.Logger
}

func NewStore(fetcher editor.Fetcher, samples editor.SampleProvider, catalog *i18n.Catalog, policy editor.DuplicateKeyPolicy, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*Session),
		fetcher:  fetcher,
		samples:  samples,
		catalog:  catalog,
		policy:   policy,
		logger:   logger,
	}
}

// Create opens a session for req and starts loading its resource. The load outlives ctx
// and is cancelled when the session is deleted.
func (s *Store) Create(ctx context.Context, operator string, req models.SessionRequest) (*Session, error) {
	if strings.TrimSpace(req.Kind) == "" || strings.TrimSpace(req.Namespace) == "" {
		return nil, fmt.Errorf("kind and namespace are required")
	}

	id := uuid.NewString()
	logger := s.logger.With(zap.String("session_id", id))
	identity := models.Identity{
		Kind:      models.CanonicalKind(req.Kind),
		Namespace: req.Namespace,
		Name:      req.Name,
	}

	rec := notify.NewRecorder(logger)
	tr := s.catalog.Translator(req.Locale)
	opts := editor.Options{Notifier: rec, Translator: tr, Logger: logger, Policy: s.policy}

	ed := NewEditor(identity.Kind, opts)
	source := editor.NewSubject[codec.Resource]()
	unbind := ed.Bind(source)

	loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess := &Session{
		ID:            id,
		Identity:      identity,
		Operator:      operator,
		Editor:        ed,
		Notifications: rec,
		Translator:    tr,
		Created:       time.Now(),
		cancel:        cancel,
		unbind:        unbind,
	}
	sess.Load = editor.NewLoader(s.fetcher, s.samples, opts).Load(loadCtx, identity, source)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	metrics.SessionsActive.Inc()
	logger.Info("session opened", zap.Stringer("resource", identity), zap.String("operator", operator))
	return sess, nil
}

// Translator returns the messages best matching locale.
func (s *Store) Translator(locale string) i18n.Translator {
	return s.catalog.Translator(locale)
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Delete closes a session. Its coordinator stops listening for the initial resource.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sess.close()
	metrics.SessionsActive.Dec()
	s.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Expire closes sessions older than ttl and returns how many were closed.
func (s *Store) Expire(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.RLock()
	var stale []string
	for id, sess := range s.sessions {
		if sess.Created.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if s.Delete(id) == nil {
			closed++
		}
	}
	return closed
}

// RunExpiry calls Expire every interval until ctx is done.
func (s *Store) RunExpiry(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Expire(ttl); n > 0 {
				s.logger.Info("expired sessions", zap.Int("count", n))
			}
		}
	}
}
