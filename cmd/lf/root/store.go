package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeforge/internal/config"
	"lifeforge/internal/engine"
	"lifeforge/internal/game"
	"lifeforge/internal/notify"
	"lifeforge/internal/storage"
	"lifeforge/internal/ui"
)

// openStore builds the session store: config, SQLite backend, webhook
// notifier, snapshot restore and a remote refresh.
func openStore(ctx context.Context) (*game.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	session := &game.Session{UserID: cfg.UserID, Name: cfg.UserName, Email: cfg.UserEmail}
	opts := []game.Option{
		game.WithSnapshotPath(cfg.SnapshotPath),
		game.WithLevelPolicy(cfg.LevelPolicy()),
	}
	if cfg.WebhookURL != "" {
		opts = append(opts, game.WithNotifier(notify.NewWebhook(cfg.WebhookURL, cfg.WebhookAPIKey)))
	}

	store := game.NewStore(session, storage.NewBackend(db), opts...)
	if err := store.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

// startupCheck runs the once-per-day rollover and nudges toward `lf
// checkin` when yesterday's dailies need review.
func startupCheck(ctx context.Context, cmd *cobra.Command, store *game.Store) error {
	res, err := store.RunDailyCheck(ctx)
	if err != nil {
		if err = reportSync(cmd, err); err != nil {
			return err
		}
	}
	if res != nil && len(res.Pending) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(fmt.Sprintf("%s %d daily(ies) from last time need review — run 'lf checkin'.", ui.IconWarn, len(res.Pending))))
	}
	if res != nil && res.StreakExtended {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Clean day! Streak is now %d.", ui.IconFlame, res.Streak)))
	}
	return nil
}

// resolveRoutineID accepts a full id or an unambiguous prefix.
func resolveRoutineID(store *game.Store, arg string) (string, error) {
	var matches []engine.Routine
	for _, r := range store.Routines() {
		if r.ID == arg {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, arg) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return "", fmt.Errorf("no routine matches %q", arg)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
