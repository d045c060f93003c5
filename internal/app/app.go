// Package app wires configuration, logging, storage and the calendar
// engine into one runnable unit, and keeps them in sync on hot reloads.
package app

import (
	"context"
	"sync"

	"bizcal/internal/calendar"
	"bizcal/internal/config"
	"bizcal/internal/observability/pprofsvc"
	"bizcal/internal/services/refresher"
	"bizcal/internal/storage"
	logx "bizcal/pkg/logx"
)

type App struct {
	cfgPath string

	cfgm *config.Manager

	log  logx.Logger
	logs *logx.Service

	store   storage.Store
	eng     *calendar.Engine
	refresh *refresher.Service
	pprof   *pprofsvc.Service

	watchCancel context.CancelFunc
	wg          sync.WaitGroup
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.New(mapLogConfig(cfg))
	log = log.With(logx.String("comp", "app"))

	calCfg, err := mapCalendarConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Storage (optional)
	var store storage.Store
	if sc, enabled, err := mapStorageConfig(cfg); err != nil {
		return nil, err
	} else if enabled {
		st, err := storage.Open(sc, log.With(logx.String("comp", "storage")))
		if err != nil {
			return nil, err
		}
		store = st
		log.Info("storage enabled", logx.String("driver", sc.Driver))
	}

	eng := calendar.New(calCfg, store, log.With(logx.String("comp", "calendar")))

	refCfg, err := mapRefreshConfig(cfg)
	if err != nil {
		return nil, err
	}
	refSvc := refresher.New(refCfg, eng, store, log.With(logx.String("comp", "refresher")))

	pprofSvc := pprofsvc.New(mapPprofConfig(cfg), log.With(logx.String("comp", "pprof")))

	return &App{
		cfgPath: cfgPath,
		cfgm:    cfgm,
		log:     log,
		logs:    logSvc,
		store:   store,
		eng:     eng,
		refresh: refSvc,
		pprof:   pprofSvc,
	}, nil
}

// Engine exposes the calendar engine to embedding callers.
func (a *App) Engine() *calendar.Engine { return a.eng }

func (a *App) Start(ctx context.Context) error {
	// Pull the stored holidays before anything schedules against the view.
	if err := a.eng.Reload(ctx); err != nil {
		return err
	}

	a.refresh.Start(ctx)
	a.pprof.Start(ctx)

	// Transactional config reload: validate before commit/publish.
	a.cfgm.SetLogger(a.log.With(logx.String("comp", "config")))
	a.cfgm.SetValidator(func(_ context.Context, cfg *config.Config) error {
		if _, err := mapCalendarConfig(cfg); err != nil {
			return err
		}
		if _, _, err := mapStorageConfig(cfg); err != nil {
			return err
		}
		if _, err := mapRefreshConfig(cfg); err != nil {
			return err
		}
		return nil
	})

	watchCtx, cancel := context.WithCancel(ctx)
	a.watchCancel = cancel

	ch := a.cfgm.Subscribe(4)
	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		_ = a.cfgm.Watch(watchCtx)
	}()
	go func() {
		defer a.wg.Done()
		defer a.cfgm.Unsubscribe(ch)
		old := a.cfgm.Get()
		for {
			select {
			case <-watchCtx.Done():
				return
			case cfg, ok := <-ch:
				if !ok {
					return
				}
				a.applyConfig(watchCtx, old, cfg)
				old = cfg
			}
		}
	}()

	a.log.Info("started", logx.String("config", a.cfgPath))
	return nil
}

// applyConfig pushes a validated config into every component.
// The validator already ran, so mapping errors here mean a logic bug;
// they are logged and the old component config stays in effect.
func (a *App) applyConfig(ctx context.Context, old, cfg *config.Config) {
	changed, attrs := config.SummarizeConfigChange(old, cfg)
	if len(changed) == 0 {
		return
	}
	a.log.Info("config reloaded", append(attrs, logx.Strings("changed", changed))...)

	a.logs.Apply(mapLogConfig(cfg))

	if calCfg, err := mapCalendarConfig(cfg); err != nil {
		a.log.Error("calendar config mapping failed after validation", logx.Err(err))
	} else {
		a.eng.Apply(calCfg)
	}

	if refCfg, err := mapRefreshConfig(cfg); err != nil {
		a.log.Error("refresh config mapping failed after validation", logx.Err(err))
	} else {
		a.refresh.Apply(ctx, refCfg)
	}
	// Storage and pprof changes need a restart; they handle process
	// lifetime resources.
}

func (a *App) Stop(ctx context.Context) error {
	if a.watchCancel != nil {
		a.watchCancel()
	}
	a.refresh.Stop(ctx)
	a.pprof.Stop(ctx)
	a.wg.Wait()

	if a.store != nil {
		_ = a.store.Close()
	}
	a.log.Info("stopped")
	_ = a.logs.Close()
	return nil
}
