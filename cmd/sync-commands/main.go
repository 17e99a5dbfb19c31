// Package main provides a utility to sync Discord slash commands.
// Stale commands are removed and only the currently defined ones stay registered.
//
// Usage:
//
//	go run ./cmd/sync-commands [options]
//
// Options:
//
//	-list           List the commands Discord currently has
//	-clean          Remove all commands without registering new ones
//	-guild <id>     Target a guild (dev commands) instead of global commands
//	-sync           Overwrite with the current commands (default)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PancyStudios/ToothlessGo/internal/commands"
	"github.com/PancyStudios/ToothlessGo/pkg/config"
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

func main() {
	listCmd := flag.Bool("list", false, "List all registered commands")
	cleanCmd := flag.Bool("clean", false, "Remove all commands without registering new ones")
	guildID := flag.String("guild", "", "Target a specific guild (leave empty for global)")
	_ = flag.Bool("sync", false, "Sync commands (default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando utilidad de sincronización de comandos...", "SyncCommands")

	client, err := discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "SyncCommands")
		os.Exit(1)
	}

	// The gateway is only needed to learn the application id
	if cfg.ClientID == "" {
		if err := client.Session.Open(); err != nil {
			logger.Critical(fmt.Sprintf("Error connecting to Discord: %v", err), "SyncCommands")
			os.Exit(1)
		}
		defer client.Session.Close()
		logger.Success("Conectado a Discord", "SyncCommands")
	}

	commands.RegisterAll(client)

	switch {
	case *listCmd:
		err = listCommands(client, *guildID)
	case *cleanCmd:
		err = cleanCommands(client, *guildID)
	default:
		err = syncCommands(client, *guildID)
	}
	if err != nil {
		logger.Error(err.Error(), "SyncCommands")
		os.Exit(1)
	}

	logger.Success("Operación completada exitosamente", "SyncCommands")
}

func listCommands(client *discord.ExtendedClient, guildID string) error {
	logger.Info("📋 Listando comandos registrados...", "SyncCommands")

	var (
		cmds []*discordgo.ApplicationCommand
		err  error
	)
	if guildID != "" {
		logger.Info(fmt.Sprintf("Obteniendo comandos del servidor: %s", guildID), "SyncCommands")
		cmds, err = client.CommandHandler.ListGuildCommands(guildID)
	} else {
		logger.Info("Obteniendo comandos globales", "SyncCommands")
		cmds, err = client.CommandHandler.ListGlobalCommands()
	}
	if err != nil {
		return fmt.Errorf("error obteniendo comandos: %w", err)
	}

	if len(cmds) == 0 {
		logger.Info("No hay comandos registrados", "SyncCommands")
		return nil
	}
	logger.Info(fmt.Sprintf("Comandos encontrados: %d", len(cmds)), "SyncCommands")
	for i, cmd := range cmds {
		logger.Info(fmt.Sprintf("  %d. /%s - %s (ID: %s)", i+1, cmd.Name, cmd.Description, cmd.ID), "SyncCommands")
	}
	return nil
}

func cleanCommands(client *discord.ExtendedClient, guildID string) error {
	logger.Info("🧹 Eliminando todos los comandos...", "SyncCommands")

	var err error
	if guildID != "" {
		err = client.CommandHandler.UnregisterGuildCommands(guildID)
	} else {
		err = client.CommandHandler.UnregisterCommands()
	}
	if err != nil {
		return fmt.Errorf("error eliminando comandos: %w", err)
	}
	return nil
}

// syncCommands overwrites global commands, or the dev commands of guildID
func syncCommands(client *discord.ExtendedClient, guildID string) error {
	target := "globales"
	count := len(client.CommandHandler.GlobalCommands())
	if guildID != "" {
		target = "de desarrollo en " + guildID
		count = len(client.CommandHandler.DevCommands())
	}
	logger.Info(fmt.Sprintf("🔄 Sincronizando %d comandos %s...", count, target), "SyncCommands")

	if err := client.CommandHandler.SyncCommands(guildID); err != nil {
		return fmt.Errorf("error sincronizando comandos: %w", err)
	}
	logger.Success("✅ Comandos sincronizados correctamente", "SyncCommands")
	return nil
}
