package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/HaPhanBaoMinh/supmet/internal/app"
	"github.com/HaPhanBaoMinh/supmet/internal/config"
	"github.com/HaPhanBaoMinh/supmet/internal/infrastructure/promexport"
	"github.com/HaPhanBaoMinh/supmet/internal/infrastructure/static"
	"github.com/HaPhanBaoMinh/supmet/internal/logging"
)

func main() {
	fs := pflag.NewFlagSet("supmet", pflag.ExitOnError)
	config.RegisterFlags(fs)
	export := fs.String("export", "", "print the selected month instead of starting the dashboard (prom)")
	output := fs.String("output", "-", "export destination file, - for stdout")
	_ = fs.Parse(os.Args[1:])

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		fatal(err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := static.New(cfg.AnalyticsCalendar(), log)
	if err != nil {
		fatal(err)
	}
	log.Info("supmet starting",
		zap.String("config", cfg.Path),
		zap.String("month", cfg.StartMonth()),
		zap.Int("months", len(cfg.Calendar.Months)),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *export != "" {
		if err := runExport(ctx, repo, cfg.StartMonth(), *export, *output); err != nil {
			log.Error("export failed", zap.Error(err))
			fatal(err)
		}
		return
	}

	p := tea.NewProgram(app.New(repo, log, cfg.StartMonth()), tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.Path != "" {
		go func() {
			err := config.Watch(ctx, cfg.Path, fs, log, func(updated *config.Config) {
				next, err := static.New(updated.AnalyticsCalendar(), log)
				if err != nil {
					log.Error("config reload rejected", zap.Error(err))
					return
				}
				p.Send(app.RepoMsg{Repo: next})
			})
			if err != nil {
				log.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error("dashboard exited", zap.Error(err))
		fatal(err)
	}
	log.Info("supmet shutting down")
}

func runExport(ctx context.Context, repo *static.Repo, month, format, output string) (err error) {
	if format != "prom" {
		return fmt.Errorf("unknown export format %q", format)
	}
	metrics, err := repo.ListModules(ctx, month)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		f, createErr := os.Create(output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return promexport.Write(w, month, metrics)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "supmet:", err)
	os.Exit(1)
}
