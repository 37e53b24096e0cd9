package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mj1618/statusbar-window/internal/broadcast"
	"github.com/mj1618/statusbar-window/internal/config"
	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/platform"
	"github.com/mj1618/statusbar-window/internal/platform/sim"
	"github.com/mj1618/statusbar-window/internal/prefs"
)

// session is one controller wired to the simulated backend, the
// preferences file and, optionally, the websocket broadcast.
type session struct {
	cfg      config.Config
	provider *platform.Provider
	prefs    *prefs.File
	hub      *broadcast.Hub
	ctrl     *controller.Controller
}

type sessionOptions struct {
	// Broadcast wraps the provider so applied layouts reach websocket
	// clients. Only honoured when cfg.Broadcast.Listen is set.
	Broadcast bool
}

func newSession(cfg config.Config, opts sessionOptions) (*session, error) {
	pf, err := prefs.Open(cfg.Prefs.Path, logger.With("component", "prefs"))
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	p, err := platform.NewProvider(platform.Options{
		Display:     cfg.DisplaySize(),
		Preferences: pf,
	})
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, provider: p, prefs: pf}
	if opts.Broadcast && cfg.Broadcast.Listen != "" {
		s.hub = broadcast.NewHub(logger.With("component", "broadcast"), broadcast.HubConfig{})
		broadcast.Wrap(p, s.hub)
	}

	ctrlOpts := cfg.ControllerOptions()
	ctrlOpts.Logger = logger.With("component", "controller")
	ctrl, err := controller.New(p, ctrlOpts)
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	return s, nil
}

// setPref writes the preference file and reloads it so watchers see the
// change immediately instead of on the next poll.
func (s *session) setPref(key string, value bool) error {
	if err := prefs.SetValue(s.prefs.Path(), key, value); err != nil {
		return err
	}
	_, err := s.prefs.Reload()
	return err
}

// startBackground runs the preference poller and, when enabled, the
// broadcast hub and its HTTP listener until ctx is done.
func (s *session) startBackground(ctx context.Context) {
	go s.prefs.Run(ctx, s.cfg.PollInterval())

	if s.hub == nil {
		return
	}
	go s.hub.Run(ctx)

	mux := http.NewServeMux()
	broadcast.NewServer(s.hub, s.ctrl.Configuration).Register(mux, "/ws")
	srv := &http.Server{
		Addr:              s.cfg.Broadcast.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("broadcast listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("broadcast server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// blur returns the simulated blur overlay, or nil when blur is unsupported.
func (s *session) blur() *sim.BlurOverlay {
	if !s.cfg.Resources.BlurSupported {
		return nil
	}
	b, _ := s.provider.BlurOverlay.(*sim.BlurOverlay)
	return b
}

func (s *session) Close() {
	s.ctrl.Close()
}
