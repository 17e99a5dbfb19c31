package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{"!", false},
		{"?t", false},
		{"ñ!", false},
		{"", true},
		{"toolong", true},
		{"a b", true},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			err := ValidatePrefix(tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrefix(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			}
		})
	}
}

func TestWelcomePatch(t *testing.T) {
	leave := true
	got := WelcomePatch(WelcomeOptions{Enabled: true, ChannelID: "c1", LeaveEnabled: &leave})
	want := map[string]any{"enabled": true, "channelId": "c1", "leaveEnabled": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WelcomePatch() = %v, want %v", got, want)
	}

	got = WelcomePatch(WelcomeOptions{})
	if len(got) != 1 {
		t.Errorf("empty options should only patch enabled, got %v", got)
	}
}

func TestLevelsPatch(t *testing.T) {
	current := models.DefaultGuildConfig().Levels

	tests := []struct {
		name    string
		min     int64
		max     int64
		want    map[string]any
		wantErr error
	}{
		{"keep range", 0, 0, map[string]any{"enabled": true}, nil},
		{"new min", 20, 0, map[string]any{"enabled": true, "xpMin": int64(20)}, nil},
		{"clamped", 0, 500, map[string]any{"enabled": true, "xpMax": int64(100)}, nil},
		{"min above current max", 30, 0, nil, ErrXPRange},
		{"inverted", 50, 10, nil, ErrXPRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LevelsPatch(current, true, "", tt.min, tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LevelsPatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelsPatchApplies(t *testing.T) {
	repos := database.NewRepositories(database.NewStore(database.NewFileBackend(t.TempDir())))

	patch, err := LevelsPatch(repos.Guilds.Get("g1").Levels, true, "chan", 5, 40)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := repos.Guilds.Patch("g1", models.SectionLevels, patch)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Levels.Enabled || cfg.Levels.XPMin != 5 || cfg.Levels.XPMax != 40 {
		t.Errorf("levels = %+v", cfg.Levels)
	}
	if cfg.Levels.AnnounceChannelID == nil || *cfg.Levels.AnnounceChannelID != "chan" {
		t.Errorf("announce channel = %v", cfg.Levels.AnnounceChannelID)
	}
	if cfg.Prefix != models.DefaultPrefix {
		t.Errorf("sibling fields changed: prefix %q", cfg.Prefix)
	}
}

func TestEditAutoRoles(t *testing.T) {
	full := make([]string, maxAutoRoles)
	for i := range full {
		full[i] = string(rune('a' + i))
	}

	tests := []struct {
		name    string
		roles   []string
		action  string
		role    string
		want    []string
		wantErr error
	}{
		{"add", []string{"r1"}, ActionAdd, "r2", []string{"r1", "r2"}, nil},
		{"add duplicate", []string{"r1"}, ActionAdd, "r1", []string{"r1"}, ErrRoleExists},
		{"add over limit", full, ActionAdd, "z", full, ErrTooManyRoles},
		{"remove", []string{"r1", "r2"}, ActionRemove, "r1", []string{"r2"}, nil},
		{"remove missing", []string{"r1"}, ActionRemove, "r9", []string{"r1"}, ErrRoleMissing},
		{"clear", []string{"r1", "r2"}, ActionClear, "", []string{}, nil},
		{"unknown", []string{"r1"}, "swap", "r2", []string{"r1"}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EditAutoRoles(tt.roles, tt.action, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EditAutoRoles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditAutoRolesDoesNotAlias(t *testing.T) {
	roles := make([]string, 2, 4)
	roles[0], roles[1] = "r1", "r2"

	if _, err := EditAutoRoles(roles, ActionRemove, "r1"); err != nil {
		t.Fatal(err)
	}
	if roles[0] != "r1" || roles[1] != "r2" {
		t.Errorf("input slice modified: %v", roles)
	}
}

func TestRoleList(t *testing.T) {
	if got := RoleList(nil); got != "Ninguno" {
		t.Errorf("RoleList(nil) = %q", got)
	}
	if got := RoleList([]string{"1", "2"}); got != "<@&1> <@&2>" {
		t.Errorf("RoleList() = %q", got)
	}
}
