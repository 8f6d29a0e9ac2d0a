package gateway

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/engine"
	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/rs/zerolog/log"
)

// Publisher publishes engine events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// SnapshotStore persists session snapshots write-through after mutations.
type SnapshotStore interface {
	Save(ctx context.Context, state models.SessionState) error
}

// ServiceConfig wires the optional collaborators and the session inputs.
type ServiceConfig struct {
	Connection   ConnectionConfig
	Publisher    Publisher // nil disables bus publishing
	Store        SnapshotStore
	Catalog      []models.Item
	Participants []models.Participant
}

// Service is the gateway's command side: it drives the engine from client
// commands and fans engine events out to connections, the bus, and the
// snapshot store.
type Service struct {
	engine *engine.Engine
	cm     *ConnectionManager
	cfg    ServiceConfig
}

func NewService(eng *engine.Engine, cfg ServiceConfig) *Service {
	s := &Service{engine: eng, cfg: cfg}
	s.cm = NewConnectionManager(cfg.Connection, s)
	return s
}

// ConnectionManager exposes the manager for the server loop.
func (s *Service) ConnectionManager() *ConnectionManager {
	return s.cm
}

// StartDraft starts the session with the configured catalog and
// participants.
func (s *Service) StartDraft(ctx context.Context) error {
	evts, err := s.engine.Start(s.cfg.Catalog, s.cfg.Participants)
	if err != nil {
		return err
	}
	s.fanout(ctx, evts, true)
	return nil
}

// Tick advances the pick clock by one second. Tick events are broadcast but
// not persisted; the snapshot store is written only after mutating actions.
func (s *Service) Tick() {
	s.fanout(context.Background(), s.engine.Tick(), false)
}

// HandleCommand dispatches a client command into the engine. Command
// failures are client misuse, not gateway faults; they are logged and the
// session stays unchanged.
func (s *Service) HandleCommand(cmd Command) {
	ctx := context.Background()

	switch cmd.Action {
	case ActionPick:
		itemID, err := uuid.Parse(cmd.ItemID)
		if err != nil {
			log.Warn().Str("item_id", cmd.ItemID).Msg("pick command with invalid item id")
			return
		}
		evts, err := s.engine.Pick(itemID)
		if err != nil {
			s.logCommandError(cmd, err)
			return
		}
		s.fanout(ctx, evts, true)

	case ActionPause:
		s.fanout(ctx, s.engine.Pause(), false)

	case ActionResume:
		s.fanout(ctx, s.engine.Resume(), false)

	case ActionUndo:
		evts, err := s.engine.Undo()
		if err != nil {
			s.logCommandError(cmd, err)
			return
		}
		s.fanout(ctx, evts, true)

	case ActionRedo:
		evts, err := s.engine.Redo()
		if err != nil {
			s.logCommandError(cmd, err)
			return
		}
		s.fanout(ctx, evts, true)

	default:
		log.Warn().Str("action", string(cmd.Action)).Msg("unknown command action - ignoring")
	}
}

func (s *Service) logCommandError(cmd Command, err error) {
	// Empty-stack undo/redo is a reported no-op, not a fault.
	if errors.Is(err, engine.ErrNothingToUndo) || errors.Is(err, engine.ErrNothingToRedo) {
		log.Info().Str("action", string(cmd.Action)).Msg("command was a no-op")
		return
	}
	log.Warn().Err(err).Str("action", string(cmd.Action)).Msg("command rejected")
}

// fanout broadcasts events to WebSocket clients, publishes them to the bus,
// and optionally persists a fresh snapshot.
func (s *Service) fanout(ctx context.Context, evts []events.Event, persist bool) {
	for _, evt := range evts {
		s.cm.Broadcast(evt)
		if s.cfg.Publisher != nil {
			if err := s.cfg.Publisher.Publish(ctx, evt); err != nil {
				log.Error().Err(err).Str("event_type", string(evt.Type)).Msg("failed to publish event")
			}
		}
	}

	if persist && len(evts) > 0 && s.cfg.Store != nil {
		if err := s.cfg.Store.Save(ctx, s.engine.Snapshot()); err != nil {
			log.Error().Err(err).Msg("failed to persist session snapshot")
		}
	}
}
