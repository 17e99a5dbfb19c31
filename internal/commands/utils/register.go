// Package utils provides /ping, /help and /status.
package utils

import (
	"github.com/PancyStudios/ToothlessGo/pkg/discord"
)

// RegisterUtilsCommands registers the utility commands as top-level commands
func RegisterUtilsCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createPingCommand())
	client.CommandHandler.RegisterCommand(createHelpCommand())
	client.CommandHandler.RegisterCommand(createStatusCommand())
}
