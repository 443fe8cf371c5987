package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/brainrot-academy/academy-client/internal/config"
	"github.com/brainrot-academy/academy-client/internal/logger"
	"github.com/brainrot-academy/academy-client/internal/settings"
	"github.com/brainrot-academy/academy-client/internal/storage"
	"github.com/brainrot-academy/academy-client/pkg/api"
	"github.com/brainrot-academy/academy-client/pkg/httpclient"
	"github.com/brainrot-academy/academy-client/pkg/notify"
	"github.com/brainrot-academy/academy-client/pkg/sinks"
)

// App wires the API client, the notification emitter with its surfaces, and
// the settings store.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	emitter *notify.Emitter
	fanout  *sinks.Fanout
	api     *api.Client
}

// New builds the runtime from config. Notifications are printed to notifyOut.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, notifyOut io.Writer) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// the settings store is opened per use; a bbolt file stays locked while open
	if err := storage.Check(cfg.SettingsStore, cfg.SettingsPath); err != nil {
		return nil, fmt.Errorf("settings storage: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	surface := notify.NewMultiSurface(notify.NewTerminalSurface(notifyOut), fanout)
	emitter := notify.NewEmitter(surface, notify.WithTTL(cfg.NotificationTTL), notify.WithLogger(log))

	transport := httpclient.NewRestyClient(cfg.APIBaseURL, cfg.RequestTimeout)

	return &App{
		cfg:     cfg,
		log:     log,
		emitter: emitter,
		fanout:  fanout,
		api:     api.NewClient(transport, emitter, log),
	}, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*sinks.Fanout, error) {
	if cfg.SinksFile == "" {
		return sinks.NewFanout(nil), nil
	}

	sinksFile, err := sinks.LoadFile(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks: %w", err)
	}
	enabled := sinksFile.Enabled()

	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, sc := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   sc.ID,
			"type": sc.Type,
		})
	}
	fanout := sinks.NewFanout(built)
	log.InfoObj("notification sinks ready", "sinks_meta", map[string]any{
		"count": fanout.Size(),
		"sinks": summaries,
	})
	return fanout, nil
}

// withSettings opens the configured store, runs fn and closes the store again.
func (a *App) withSettings(fn func(*settings.Settings) error) (err error) {
	store, err := storage.NewStore(a.cfg.SettingsStore, a.cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			a.log.ErrorObj("storage close failed", "error", cerr)
			err = errors.Join(err, fmt.Errorf("close settings storage: %w", cerr))
		}
	}()
	return fn(settings.New(store))
}

// Close removes notifications still on screen and releases the sinks.
func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	if err := a.emitter.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close notifications: %w", err))
	}
	if err := a.fanout.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sinks: %w", err))
	}
	return errors.Join(errs...)
}
