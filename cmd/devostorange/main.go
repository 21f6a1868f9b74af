package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/devostorange/internal/application/events"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/application/service"
	"github.com/jhoicas/devostorange/internal/application/view"
	"github.com/jhoicas/devostorange/internal/infrastructure/apiclient"
	"github.com/jhoicas/devostorange/internal/infrastructure/session"
	"github.com/jhoicas/devostorange/internal/interfaces/cli"
	"github.com/jhoicas/devostorange/pkg/config"
	"github.com/jhoicas/devostorange/pkg/logger"
)

var (
	version   string
	buildDate string
)

func main() {
	var (
		baseURL string
		showVer bool
	)
	flag.StringVar(&baseURL, "url", "", "dirección base de la API (por defecto API_BASE_URL)")
	flag.BoolVar(&showVer, "version", false, "muestra versión y fecha de build")
	flag.Parse()

	if showVer {
		fmt.Printf("devostorange\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	// Los logs van a stderr para no mezclarse con el prompt.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
	log.Debug().Str("api", cfg.API.BaseURL).Str("session", cfg.Session.File).Msg("iniciando shell")

	store := session.NewFileStore(cfg.Session.File, log)
	if err := store.Load(); err != nil {
		log.Warn().Err(err).Msg("sesión guardada ilegible, se inicia sin sesión")
	}

	var shell *cli.Shell
	client := apiclient.New(apiclient.Options{
		BaseURL:  cfg.API.BaseURL,
		BasePath: cfg.UI.BasePath,
		Timeout:  cfg.API.Timeout(),
		Session:  store,
		Navigator: ports.NavigatorFunc(func(path string) {
			if shell != nil {
				shell.Navigate(path)
			}
		}),
		Logger: log,
	})

	env := view.Env{
		Session:           store,
		Bus:               events.NewBus(log),
		Toaster:           view.NewToaster(cfg.UI.ToastDismiss()),
		Logger:            log,
		LowStockThreshold: cfg.UI.LowStockThreshold,
		RecentLimit:       cfg.UI.RecentMovementsLimit,
	}
	shell = cli.NewShell(os.Stdin, os.Stdout, env, view.NewGuard(store, cfg.UI.BasePath), cli.Services{
		Auth:      service.NewAuthService(client, store),
		Users:     service.NewUserService(client),
		Products:  service.NewProductService(client),
		Movements: service.NewMovementService(client),
		Reports:   service.NewReportService(client),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := shell.Run(ctx); err != nil {
		log.Error().Err(err).Msg("shell finalizado con error")
		os.Exit(1)
	}
}
