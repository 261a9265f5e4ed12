package battle

import (
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// Manager hands out battle sessions keyed by id, creating them on
// demand so each caller gets its own roster.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Model
	recorder StatsRecorder
	opts     []Option
	logger   zerolog.Logger
}

func NewManager(recorder StatsRecorder, logger zerolog.Logger, opts ...Option) *Manager {
	return &Manager{
		sessions: make(map[string]*Model),
		recorder: recorder,
		opts:     opts,
		logger:   logger,
	}
}

// Session returns the model for the given id, creating it if unknown.
// An empty id creates a fresh session under a generated id.
func (mgr *Manager) Session(id string) (string, *Model, error) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if id == "" {
		generated, err := gonanoid.New()
		if err != nil {
			return "", nil, fmt.Errorf("failed to generate session id: %w", err)
		}
		id = generated
	}

	model, ok := mgr.sessions[id]
	if !ok {
		model = NewModel(mgr.recorder, mgr.logger.With().Str("battle_session", id).Logger(), mgr.opts...)
		mgr.sessions[id] = model
		mgr.logger.Debug().Str("battle_session", id).Msg("battle session created")
	}
	return id, model, nil
}

// Drop removes a session. Unknown ids are a no-op.
func (mgr *Manager) Drop(id string) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	delete(mgr.sessions, id)
}
