package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg"
	"github.com/yacobolo/twcfg/internal/logging"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the declaration whenever it changes",
	Long: `Watch the declaration file and re-validate it on every change. A valid
edit replaces the active configuration; an invalid one is reported and the
previous configuration stays active. SIGHUP forces a reload. Runs until
interrupted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd)
	},
}

func runWatch(ctx context.Context, cmd *cobra.Command) error {
	path, err := resolveDeclaration()
	if err != nil {
		return err
	}

	logger := logging.New(buildLogConfig())
	quiet := getBoolWithFallback("quiet", "quiet", false)
	rep := newReporter(cmd.OutOrStdout())

	holder := twcfg.NewHolder(nil)
	w := twcfg.NewWatcher(path, holder, twcfg.WatchOptions{
		OnChange: func(cfg *twcfg.Config) {
			if !quiet {
				rep.PrintSummary(path, cfg)
			}
		},
		OnError: func(err error) {
			if !quiet {
				rep.PrintError(path, err)
			}
		},
	}, logger)

	if err := w.Start(); err != nil {
		if holder.Current() == nil {
			return errReported
		}
		return err
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-hup:
				logger.Info("Reload requested", "signal", "SIGHUP")
				_, _ = w.Reload()
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		return w.Stop()
	})
	return g.Wait()
}
