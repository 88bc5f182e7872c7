// Package watcher polls every configured server for unread messages and
// shows them as desktop notifications.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"neptis/internal/config"
	"neptis/internal/interfaces"
	"neptis/internal/models"
)

type session struct {
	profile models.Profile
	api     interfaces.ServerAPI
	errors  int
	seen    map[string]struct{}
}

// Watcher keeps one logged-in session per usable profile. A session that
// fails maxErrors polls in a row is dropped and its endpoint is ignored for
// the blacklist duration.
type Watcher struct {
	profiles interfaces.ProfileStore
	clients  interfaces.ClientFactory
	notifier interfaces.Notifier

	interval  time.Duration
	maxErrors int
	blacklist time.Duration
	now       func() time.Time

	sessions    map[string]*session
	blacklisted map[string]time.Time
}

func New(cfg config.WatcherConfig, profiles interfaces.ProfileStore, clients interfaces.ClientFactory, notifier interfaces.Notifier) *Watcher {
	return &Watcher{
		profiles:    profiles,
		clients:     clients,
		notifier:    notifier,
		interval:    cfg.Interval,
		maxErrors:   cfg.MaxErrors,
		blacklist:   cfg.Blacklist,
		now:         time.Now,
		sessions:    make(map[string]*session),
		blacklisted: make(map[string]time.Time),
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Message watcher started", "interval", w.interval)
	for {
		w.Poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll refreshes the sessions and fetches unread messages once.
func (w *Watcher) Poll(ctx context.Context) {
	profiles, err := w.profiles.ListProfiles(ctx)
	if err != nil {
		slog.Error("Failed to list profiles", "error", err)
		return
	}
	w.syncSessions(ctx, profiles)

	for name, s := range w.sessions {
		if ctx.Err() != nil {
			return
		}
		msgs, err := s.api.ListMessages(ctx, true)
		if err != nil {
			s.errors++
			slog.Debug("Failed to fetch messages", "server", name, "errors", s.errors, "error", err)
			if s.errors >= w.maxErrors {
				w.drop(name, s)
			}
			continue
		}
		s.errors = 0

		for _, msg := range msgs {
			if _, ok := s.seen[msg.ID]; ok {
				continue
			}
			s.seen[msg.ID] = struct{}{}
			if w.notifier == nil {
				continue
			}
			if err := w.notifier.NotifyMessage(name, msg); err != nil {
				slog.Warn("Failed to show message", "server", name, "message_id", msg.ID, "error", err)
			}
		}
	}
}

// syncSessions opens sessions for new usable profiles and closes those whose
// profile is gone or changed.
func (w *Watcher) syncSessions(ctx context.Context, profiles []models.Profile) {
	known := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		if p.HasCredentials() {
			known[p.ServerName] = p
		}
	}

	for name, s := range w.sessions {
		if p, ok := known[name]; !ok || p != s.profile {
			delete(w.sessions, name)
		}
	}

	now := w.now()
	for name, p := range known {
		if _, ok := w.sessions[name]; ok {
			continue
		}
		if until, ok := w.blacklisted[p.Endpoint]; ok {
			if now.Before(until) {
				continue
			}
			delete(w.blacklisted, p.Endpoint)
		}

		p := p
		api, err := w.clients(&p)
		if err != nil {
			slog.Warn("Cannot create client", "server", name, "error", err)
			continue
		}
		if _, err := api.Login(ctx, p.Username, p.Password); err != nil {
			slog.Debug("Server not usable yet", "server", name, "error", err)
			continue
		}
		w.sessions[name] = &session{profile: p, api: api, seen: make(map[string]struct{})}
		slog.Info("Watching server messages", "server", name)
	}
}

func (w *Watcher) drop(name string, s *session) {
	delete(w.sessions, name)
	w.blacklisted[s.profile.Endpoint] = w.now().Add(w.blacklist)
	slog.Warn("Dropped message session after repeated errors", "server", name, "retry_after", w.blacklist)
}
