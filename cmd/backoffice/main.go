package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/perronifitwear/backoffice/config"
	"github.com/perronifitwear/backoffice/internal/adminapi"
	"github.com/perronifitwear/backoffice/internal/app"
	"github.com/perronifitwear/backoffice/internal/webserver"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

var (
	cfile   = flag.String("c", "backoffice.yml", "config file")
	showCfg = flag.Bool("initcfg", false, "print default config and exit")
)

func main() {
	flag.Parse()

	if *showCfg {
		out, _ := yaml.Marshal(config.DefaultAppConfig)
		fmt.Print(string(out))
		return
	}

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	webserver.Init(&webserver.WebContext{
		Config:   cfg,
		Store:    application.Store(),
		Notifier: application.Notifier(),
		Bus:      application.Bus(),
		Node:     application.Node(),
	})
	adminapi.Register()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.L().Error("web server stopped", zap.Error(err))
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.L().Error("shutdown error", zap.Error(err))
		}
	}
}
