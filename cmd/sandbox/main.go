// Command sandbox levanta una API en memoria compatible con el cliente devostorange.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/devostorange/internal/application/auth"
	"github.com/jhoicas/devostorange/internal/application/usecase"
	httpapi "github.com/jhoicas/devostorange/internal/interfaces/http"
	"github.com/jhoicas/devostorange/pkg/config"
	"github.com/jhoicas/devostorange/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.Sandbox.Addr()).
		Str("files_dir", cfg.Sandbox.FilesDir).
		Msg("iniciando sandbox")

	app, err := httpapi.NewSandbox(context.Background(), httpapi.SandboxOptions{
		Name: cfg.App.Name + "-sandbox",
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		FilesDir:  cfg.Sandbox.FilesDir,
		PublicURL: cfg.Sandbox.PublicURL,
		Logger:    log.Named("sandbox"),
		Seed:      true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("armar sandbox")
	}
	log.Info().
		Str("email", usecase.SeedAdminEmail).
		Str("password", usecase.SeedAdminPassword).
		Msg("usuario administrador de demostración")

	go func() {
		if err := app.Listen(cfg.Sandbox.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("sandbox detenido")
}
