package cli

import (
	"time"

	"github.com/zero2one-app/zero2one/internal/app/notify"
	"github.com/zero2one-app/zero2one/internal/app/session"
	"github.com/zero2one-app/zero2one/internal/daemon"
	"github.com/zero2one-app/zero2one/internal/infra/sqlite"
)

// engine bundles everything a command needs: config, storage, the
// notification feed, and the session.
type engine struct {
	cfg     daemon.Config
	db      *sqlite.DB
	feed    *notify.Feed
	session *session.Session
}

// openEngine loads config, opens storage, and builds the session.
// Callers must Close.
func openEngine() (*engine, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	if cfg.Data.MaxBackups > 0 {
		db.MaxBackups = cfg.Data.MaxBackups
	}

	feed := notify.NewFeedWithPolicy(db, notify.Policy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}, time.Now)

	sess, err := session.Open(db, feed)
	if err != nil {
		db.Close()
		return nil, err
	}
	sess.Tune(cfg.Engine.RankStep,
		time.Duration(cfg.Engine.GraceHours)*time.Hour,
		time.Duration(cfg.Engine.EventCheckMinutes)*time.Minute,
		cfg.Engine.DynamicEventChance)

	return &engine{cfg: cfg, db: db, feed: feed, session: sess}, nil
}

// cycle runs one engine pass. Commands that read or mutate progression
// call it first so penalties, events, and resets stay current.
func (e *engine) cycle() error {
	_, err := e.session.Cycle()
	return err
}

func (e *engine) Close() error {
	return e.db.Close()
}
