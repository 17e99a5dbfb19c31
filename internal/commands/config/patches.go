// Package config provides the /config command group used by administrators
// to edit the guild configuration from Discord.
package config

import (
	"errors"
	"slices"
	"unicode/utf8"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

const (
	maxPrefixLength = 5
	maxAutoRoles    = 10
	minXP           = 1
	maxXP           = 100
)

// Autorole actions
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionClear  = "clear"
)

var (
	ErrInvalidPrefix = errors.New("prefix must be 1-5 characters without spaces")
	ErrXPRange       = errors.New("xpMin must not exceed xpMax")
	ErrRoleExists    = errors.New("role is already an autorole")
	ErrRoleMissing   = errors.New("role is not an autorole")
	ErrTooManyRoles  = errors.New("too many autoroles")
	ErrUnknownAction = errors.New("unknown autorole action")
)

// ValidatePrefix checks a new command prefix
func ValidatePrefix(prefix string) error {
	n := utf8.RuneCountInString(prefix)
	if n == 0 || n > maxPrefixLength {
		return ErrInvalidPrefix
	}
	for _, r := range prefix {
		if r == ' ' || r == '\t' || r == '\n' {
			return ErrInvalidPrefix
		}
	}
	return nil
}

// WelcomeOptions holds the /config welcomer arguments. Empty strings and nil
// pointers leave the stored value untouched.
type WelcomeOptions struct {
	Enabled      bool
	ChannelID    string
	Message      string
	RoleID       string
	LeaveEnabled *bool
	LeaveMessage string
}

// WelcomePatch builds the partial update for the welcome section
func WelcomePatch(o WelcomeOptions) map[string]any {
	patch := map[string]any{"enabled": o.Enabled}
	setIfNotEmpty(patch, "channelId", o.ChannelID)
	setIfNotEmpty(patch, "message", o.Message)
	setIfNotEmpty(patch, "roleId", o.RoleID)
	setIfNotEmpty(patch, "leaveMessage", o.LeaveMessage)
	if o.LeaveEnabled != nil {
		patch["leaveEnabled"] = *o.LeaveEnabled
	}
	return patch
}

// LogPatch builds the partial update for the log section
func LogPatch(enabled bool, channelID string) map[string]any {
	patch := map[string]any{"enabled": enabled}
	setIfNotEmpty(patch, "channelId", channelID)
	return patch
}

// TicketsPatch builds the partial update for the tickets section
func TicketsPatch(enabled bool, categoryID, supportRoleID, greeting string) map[string]any {
	patch := map[string]any{"enabled": enabled}
	setIfNotEmpty(patch, "categoryId", categoryID)
	setIfNotEmpty(patch, "supportRoleId", supportRoleID)
	setIfNotEmpty(patch, "welcomeMessage", greeting)
	return patch
}

// LevelsPatch builds the partial update for the levels section. xpMin and
// xpMax of 0 keep the current values; the resulting range must stay ordered.
func LevelsPatch(current models.LevelSettings, enabled bool, channelID string, xpMin, xpMax int64) (map[string]any, error) {
	patch := map[string]any{"enabled": enabled}
	setIfNotEmpty(patch, "announceChannelId", channelID)

	newMin, newMax := int64(current.XPMin), int64(current.XPMax)
	if xpMin != 0 {
		newMin = clamp(xpMin, minXP, maxXP)
		patch["xpMin"] = newMin
	}
	if xpMax != 0 {
		newMax = clamp(xpMax, minXP, maxXP)
		patch["xpMax"] = newMax
	}
	if newMin > newMax {
		return nil, ErrXPRange
	}
	return patch, nil
}

// EditAutoRoles applies an autorole action and returns the new list
func EditAutoRoles(roles []string, action, roleID string) ([]string, error) {
	out := append([]string{}, roles...)

	switch action {
	case ActionAdd:
		if slices.Contains(out, roleID) {
			return roles, ErrRoleExists
		}
		if len(out) >= maxAutoRoles {
			return roles, ErrTooManyRoles
		}
		return append(out, roleID), nil
	case ActionRemove:
		i := slices.Index(out, roleID)
		if i < 0 {
			return roles, ErrRoleMissing
		}
		return slices.Delete(out, i, i+1), nil
	case ActionClear:
		return []string{}, nil
	}
	return roles, ErrUnknownAction
}

func setIfNotEmpty(patch map[string]any, key, value string) {
	if value != "" {
		patch[key] = value
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
