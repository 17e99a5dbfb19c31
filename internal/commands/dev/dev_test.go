package dev

import (
	"strings"
	"testing"

	"github.com/PancyStudios/ToothlessGo/pkg/discord"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		start, delta, want int64
	}{
		{100, 50, 150},
		{100, -30, 70},
		{100, -500, 0},
	}
	for _, tt := range tests {
		a := models.EconomyAccount{Wallet: tt.start, Bank: 10}
		Adjust(&a, tt.delta)
		if a.Wallet != tt.want || a.Bank != 10 {
			t.Errorf("Adjust(%d, %d) = %+v, want wallet %d", tt.start, tt.delta, a, tt.want)
		}
	}
}

func TestCodeBlock(t *testing.T) {
	if got := CodeBlock([]byte(`{"a":1}`)); got != "```json\n{\"a\":1}\n```" {
		t.Errorf("CodeBlock() = %q", got)
	}
	long := CodeBlock([]byte(strings.Repeat("x", maxCodeBlock+10)))
	if !strings.Contains(long, "\n...\n```") {
		t.Error("long documents should be truncated")
	}
}

func TestRegister(t *testing.T) {
	client := &discord.ExtendedClient{Commands: discord.NewCommandCollection()}
	client.CommandHandler = discord.NewCommandHandler(client)

	Register(client)

	if got := len(client.CommandHandler.GlobalCommands()); got != 0 {
		t.Errorf("dev commands leaked into the global list: %d", got)
	}
	dev := client.CommandHandler.DevCommands()
	if len(dev) != 1 || dev[0].Name != "dev" {
		t.Fatalf("DevCommands() = %v", dev)
	}
	if len(dev[0].Options) != 4 {
		t.Errorf("dev options = %d, want 3 subcommands and 1 group", len(dev[0].Options))
	}
	for _, name := range []string{"dev.flush", "dev.sync", "dev.config", "dev.economy.give", "dev.economy.reset"} {
		cmd, ok := client.Commands.Get(name)
		if !ok {
			t.Errorf("%s not registered", name)
			continue
		}
		if !cmd.IsDev {
			t.Errorf("%s should be marked as dev", name)
		}
	}
}
