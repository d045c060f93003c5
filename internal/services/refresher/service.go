// Package refresher keeps the engine's holiday view fresh and the
// decision audit log bounded. It is deliberately dumb: one cron entry
// that re-reads the store and prunes old audit rows.
package refresher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"bizcal/internal/calendar"
	"bizcal/internal/storage"
	logx "bizcal/pkg/logx"
)

const defaultSpec = "0 3 * * *"

type Config struct {
	Enabled  bool
	Spec     string // cron expression, 5 or 6 fields
	Timezone string // IANA TZ for cron evaluation
	Retain   time.Duration
}

type Service struct {
	mu  sync.Mutex
	cfg Config

	eng   *calendar.Engine
	store storage.Store
	log   logx.Logger

	parser cron.Parser
	c      *cron.Cron

	runCtx    context.Context
	runCancel context.CancelFunc
}

func New(cfg Config, eng *calendar.Engine, store storage.Store, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		cfg: cfg,
		eng: eng, store: store, log: log,
		// SecondOptional allows both 5-field and 6-field (with seconds) cron specs.
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil || !s.cfg.Enabled {
		return
	}

	s.runCtx, s.runCancel = context.WithCancel(ctx)

	loc := s.loadLocationLocked()
	c := cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))

	spec := strings.TrimSpace(s.cfg.Spec)
	if spec == "" {
		spec = defaultSpec
	}
	if _, err := c.AddFunc(spec, s.run); err != nil {
		s.log.Error("invalid refresh spec; refresher disabled",
			logx.String("spec", spec), logx.Err(err))
		s.runCancel()
		s.runCtx, s.runCancel = nil, nil
		return
	}

	s.c = c
	c.Start()
	s.log.Info("refresher started", logx.String("spec", spec), logx.String("tz", loc.String()))
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	cancel := s.runCancel
	s.c = nil
	s.runCtx, s.runCancel = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		// stop continues in background
	}
	s.log.Info("refresher stopped")
}

// Apply swaps config; a changed spec or timezone restarts the cron.
func (s *Service) Apply(ctx context.Context, cfg Config) {
	s.mu.Lock()
	old := s.cfg
	s.cfg = cfg
	running := s.c != nil
	s.mu.Unlock()

	restart := old.Enabled != cfg.Enabled ||
		strings.TrimSpace(old.Spec) != strings.TrimSpace(cfg.Spec) ||
		strings.TrimSpace(old.Timezone) != strings.TrimSpace(cfg.Timezone)
	if !restart {
		return
	}
	if running {
		s.Stop(ctx)
	}
	if cfg.Enabled {
		s.Start(ctx)
	}
}

// run is the cron job body.
func (s *Service) run() {
	s.mu.Lock()
	ctx := s.runCtx
	retain := s.cfg.Retain
	s.mu.Unlock()
	if ctx == nil {
		return
	}

	rctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.eng.Reload(rctx); err != nil {
		s.log.Warn("scheduled holiday reload failed", logx.Err(err))
	}

	if s.store != nil && retain > 0 {
		cutoff := time.Now().Add(-retain)
		n, err := s.store.PruneDecisions(rctx, cutoff)
		if err != nil {
			s.log.Warn("decision prune failed", logx.Err(err))
		} else if n > 0 {
			s.log.Info("old decisions pruned", logx.Int64("count", n), logx.Time("before", cutoff))
		}
	}
}

func (s *Service) loadLocationLocked() *time.Location {
	tz := strings.TrimSpace(s.cfg.Timezone)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.log.Warn("invalid refresher timezone; using local",
			logx.String("tz", tz), logx.Err(err))
		return time.Local
	}
	return loc
}
