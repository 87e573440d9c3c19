package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/pilly/internal/history"
	"github.com/yildizm/pilly/internal/logger"
	"github.com/yildizm/pilly/internal/monitor"
	"github.com/yildizm/pilly/internal/ui"
)

// runTUI opens the interactive client. While it runs, the credential file
// is watched so a login or logout from another shell is picked up.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyUISettings(cfg)

	log := newLogger(cfg)
	closeLog, err := openLogFile(log, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	store, sess, err := openSession(cfg, log)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, store)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model, err := ui.New(ui.Options{
		Context: ctx,
		History: history.New(cfg.UI.StartPath),
		Session: sess,
		Backend: client,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	log.Info("starting at %s (api %s)", cfg.UI.StartPath, cfg.API.BaseURL)
	p := ui.NewProgram(model, tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Session.Watch {
		g.Go(func() error {
			err := store.Watch(gctx, log.WithComponent("session"), func() { p.Send(ui.CredentialsChanged{}) })
			if err != nil {
				log.Warn("credential watch stopped: %v", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("interactive client failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logRequestStats(log, client.Metrics())
	return err
}

func requestItems(stats []monitor.EndpointStats) []termfmt.TreeItem {
	items := make([]termfmt.TreeItem, 0, len(stats))
	for _, s := range stats {
		items = append(items, termfmt.TreeItem{
			Label: s.Endpoint,
			Value: fmt.Sprintf("%d calls, %.0f%% errors, avg %v", s.Calls, s.ErrorRate()*100, s.Avg.Round(time.Millisecond)),
		})
	}
	return markLast(items)
}

// logRequestStats writes one debug line per API endpoint used in the session
func logRequestStats(log *logger.Logger, metrics *monitor.Requests) {
	for _, s := range metrics.Snapshot() {
		log.Debug("%s: %d calls, %d errors, avg %v, max %v", s.Endpoint, s.Calls, s.Errors, s.Avg, s.Max)
	}
}
