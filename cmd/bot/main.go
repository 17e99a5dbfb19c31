// Package main is the entry point for the Toothless bot.
// It initializes all systems and starts the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/ToothlessGo/internal/bridge"
	"github.com/PancyStudios/ToothlessGo/internal/commands"
	"github.com/PancyStudios/ToothlessGo/internal/events"
	"github.com/PancyStudios/ToothlessGo/pkg/config"
	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/errors"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/mqtt"
	"github.com/PancyStudios/ToothlessGo/pkg/web"
)

const (
	preloadTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System(fmt.Sprintf("Iniciando Toothless %s (%s)...", config.Version, config.BuildTime), "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	var (
		discordClient *discord.ExtendedClient
		repos         *database.Repositories
	)
	errors.Init(cfg.ErrorWebhook, func() {
		if repos != nil {
			if err := repos.Store.Flush(); err != nil {
				logger.Error(fmt.Sprintf("Error persistiendo datos: %v", err), "Main")
			}
		}
		if discordClient != nil {
			_ = discordClient.Stop()
		}
	})

	// Storage
	backend, err := database.OpenBackend(cfg.StorageBackend, cfg.DataDir, cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error abriendo el almacenamiento: %v", err), "Main")
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("Almacenamiento: %s", backend), "Main")

	repos = database.Init(backend)
	ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
	if err := repos.Store.Preload(ctx); err != nil {
		logger.Warn(fmt.Sprintf("Precarga incompleta: %v", err), "Main")
	}
	cancel()

	// Discord client; commands and events must exist before Start
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}
	commands.RegisterAll(discordClient)
	events.RegisterAll(discordClient)

	// Dashboard API
	webServer := web.Init(web.Options{
		WebhookURL:    cfg.LogsWebServerHook,
		AllowedOrigin: cfg.DashboardOrigin,
	})
	web.SetupAPIRoutes(webServer, &web.API{
		Repos: repos,
		Bot:   discordClient,
		Auth:  web.NewAuthenticator(cfg.DashboardSecret),
		Live:  web.NewLiveHub(repos, cfg.DashboardOrigin),
	})
	if !cfg.DashboardAuthEnabled() {
		logger.Warn("DASHBOARD_SECRET no configurado: la API del panel no requiere autenticación", "Main")
	}
	webServer.StartAsync(cfg.Port)

	// MQTT bridge for the dashboard backend
	if cfg.MQTTEnabled() {
		mqttClientID := "toothless"
		if !cfg.IsProd() {
			mqttClientID = "toothless_canary"
		}
		mqttClient := mqtt.Init(cfg.MQTTHost, cfg.MQTTPort, cfg.MQTTUser, cfg.MQTTPassword, mqttClientID)
		defer mqttClient.Destroy()

		if err := bridge.New(mqttClient, repos).Register(); err != nil {
			logger.Error(fmt.Sprintf("Error registrando el puente MQTT: %v", err), "Main")
		}
	} else {
		logger.Info("MQTT desactivado (MQTT_Host vacío)", "Main")
	}

	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}

	logger.Success("Toothless iniciado correctamente!", "Main")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.System("Apagando Toothless...", "Main")
	shutdown(discordClient, webServer, repos)
}

// shutdown stops accepting work first, then persists and closes storage
func shutdown(client *discord.ExtendedClient, webServer *web.Server, repos *database.Repositories) {
	if err := client.Stop(); err != nil {
		logger.Error(fmt.Sprintf("Error cerrando la sesión de Discord: %v", err), "Main")
	}
	if err := webServer.Shutdown(shutdownTimeout); err != nil {
		logger.Error(fmt.Sprintf("Error deteniendo el servidor web: %v", err), "Main")
	}
	if err := repos.Store.Flush(); err != nil {
		logger.Error(fmt.Sprintf("Error persistiendo datos: %v", err), "Main")
	}
	if mb, ok := repos.Store.Backend().(*database.MongoBackend); ok {
		if err := mb.Disconnect(); err != nil {
			logger.Error(fmt.Sprintf("Error desconectando MongoDB: %v", err), "Main")
		}
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
