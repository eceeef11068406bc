package application

import (
	"context"
	"sync"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/rs/zerolog/log"
)

// BranchSource is a SourceRepository that tracks a single branch.
type BranchSource interface {
	domain.SourceRepository
	Branch(ctx context.Context) (string, error)
}

// SyncService re-imports a branch-tracking source in the background.
type SyncService struct {
	importer *Importer
	source   BranchSource
	pattern  string

	// Service lifecycle context - cancelled when Close() is called
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	// guards against overlapping runs; a push during a run schedules one more
	mu      sync.Mutex
	running bool
	pending bool
}

func NewSyncService(importer *Importer, source BranchSource, pattern string) *SyncService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SyncService{
		importer: importer,
		source:   source,
		pattern:  pattern,
		ctx:      ctx,
		cancel:   cancel,
		wg:       &sync.WaitGroup{},
	}
}

// Close gracefully shuts down the SyncService by cancelling all background workers
func (s *SyncService) Close() error {
	// trigger checks the context and starts a run under mu, so no run can start after this.
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()

	return nil
}

// Start triggers the initial sync, catching changes made while the server was offline.
func (s *SyncService) Start() {
	s.trigger()
}

// HandlePush schedules a sync when ref names the tracked branch and reports whether it did.
// It returns immediately; the import runs on the service's lifecycle context.
func (s *SyncService) HandlePush(ctx context.Context, ref string) (bool, error) {
	branch, err := s.source.Branch(ctx)
	if err != nil {
		return false, err
	}

	if ref != "refs/heads/"+branch {
		log.Debug().Str("ref", ref).Str("branch", branch).Msg("Ignoring push to untracked ref")
		return false, nil
	}

	s.trigger()
	return true, nil
}

func (s *SyncService) trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	if s.running {
		s.pending = true
		return
	}
	s.running = true

	s.wg.Go(s.run)
}

func (s *SyncService) run() {
	for {
		if _, err := s.importer.Import(s.ctx, s.source, s.pattern); err != nil {
			log.Error().Err(err).Str("source", s.source.Name()).Msg("Sync failed")
		}

		s.mu.Lock()
		if !s.pending || s.ctx.Err() != nil {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.mu.Unlock()
	}
}
