package models

// Section names accepted by GuildConfig patches
const (
	SectionWelcome = "welcome"
	SectionLog     = "log"
	SectionTickets = "tickets"
	SectionLevels  = "levels"
	SectionEconomy = "economy"
)

// Default values used when a guild has no stored configuration
const (
	DefaultPrefix         = "!"
	DefaultWelcomeMessage = "Benvenuto {user}!"
	DefaultLeaveMessage   = "{username} ha lasciato il server."
	DefaultTicketGreeting = "Un membro dello staff ti risponderà a breve."
	DefaultXPMin          = 15
	DefaultXPMax          = 25
	DefaultCurrency       = "🪙"
)

// WelcomeEmbed is the optional embed layout used by the welcomer
type WelcomeEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// WelcomeSettings configures join and leave messages
type WelcomeSettings struct {
	Enabled      bool          `json:"enabled"`
	ChannelID    *string       `json:"channelId"`
	Message      string        `json:"message"`
	RoleID       *string       `json:"roleId"`
	LeaveEnabled bool          `json:"leaveEnabled"`
	LeaveMessage string        `json:"leaveMessage"`
	Embed        *WelcomeEmbed `json:"embed"`
}

// LogSettings configures the moderation log channel
type LogSettings struct {
	Enabled   bool    `json:"enabled"`
	ChannelID *string `json:"channelId"`
}

// TicketSettings configures the ticket system
type TicketSettings struct {
	Enabled        bool    `json:"enabled"`
	CategoryID     *string `json:"categoryId"`
	SupportRoleID  *string `json:"supportRoleId"`
	WelcomeMessage string  `json:"welcomeMessage"`
}

// LevelSettings configures XP accrual. XPMin <= XPMax is expected but not enforced.
type LevelSettings struct {
	Enabled           bool    `json:"enabled"`
	AnnounceChannelID *string `json:"announceChannelId"`
	XPMin             int     `json:"xpMin"`
	XPMax             int     `json:"xpMax"`
}

// EconomySettings configures the guild economy
type EconomySettings struct {
	Enabled  bool   `json:"enabled"`
	Currency string `json:"currency"`
}

// GuildConfig is the full per-guild configuration document
type GuildConfig struct {
	Prefix    string          `json:"prefix"`
	Welcome   WelcomeSettings `json:"welcome"`
	Log       LogSettings     `json:"log"`
	Tickets   TicketSettings  `json:"tickets"`
	Levels    LevelSettings   `json:"levels"`
	Economy   EconomySettings `json:"economy"`
	AutoRoles []string        `json:"autoroles"`
}

// GuildConfigUpdate is a shallow update: every non-nil field replaces the
// stored field wholesale.
type GuildConfigUpdate struct {
	Prefix    *string          `json:"prefix,omitempty"`
	Welcome   *WelcomeSettings `json:"welcome,omitempty"`
	Log       *LogSettings     `json:"log,omitempty"`
	Tickets   *TicketSettings  `json:"tickets,omitempty"`
	Levels    *LevelSettings   `json:"levels,omitempty"`
	Economy   *EconomySettings `json:"economy,omitempty"`
	AutoRoles []string         `json:"autoroles,omitempty"`
}

// DefaultGuildConfig returns the configuration a new guild starts with
func DefaultGuildConfig() GuildConfig {
	return GuildConfig{
		Prefix: DefaultPrefix,
		Welcome: WelcomeSettings{
			Message:      DefaultWelcomeMessage,
			LeaveMessage: DefaultLeaveMessage,
		},
		Tickets: TicketSettings{
			WelcomeMessage: DefaultTicketGreeting,
		},
		Levels: LevelSettings{
			XPMin: DefaultXPMin,
			XPMax: DefaultXPMax,
		},
		Economy: EconomySettings{
			Enabled:  true,
			Currency: DefaultCurrency,
		},
		AutoRoles: []string{},
	}
}

// Apply merges the non-nil fields of u into c
func (c GuildConfig) Apply(u GuildConfigUpdate) GuildConfig {
	if u.Prefix != nil {
		c.Prefix = *u.Prefix
	}
	if u.Welcome != nil {
		c.Welcome = u.Welcome.Clone()
	}
	if u.Log != nil {
		c.Log = u.Log.Clone()
	}
	if u.Tickets != nil {
		c.Tickets = u.Tickets.Clone()
	}
	if u.Levels != nil {
		c.Levels = u.Levels.Clone()
	}
	if u.Economy != nil {
		c.Economy = *u.Economy
	}
	if u.AutoRoles != nil {
		c.AutoRoles = append([]string{}, u.AutoRoles...)
	}
	return c
}

// Clone returns a deep copy of the configuration
func (c GuildConfig) Clone() GuildConfig {
	c.Welcome = c.Welcome.Clone()
	c.Log = c.Log.Clone()
	c.Tickets = c.Tickets.Clone()
	c.Levels = c.Levels.Clone()
	if c.AutoRoles != nil {
		c.AutoRoles = append([]string{}, c.AutoRoles...)
	}
	return c
}

// Clone returns a deep copy of the welcome settings
func (w WelcomeSettings) Clone() WelcomeSettings {
	w.ChannelID = cloneString(w.ChannelID)
	w.RoleID = cloneString(w.RoleID)
	if w.Embed != nil {
		e := *w.Embed
		w.Embed = &e
	}
	return w
}

// Clone returns a deep copy of the log settings
func (l LogSettings) Clone() LogSettings {
	l.ChannelID = cloneString(l.ChannelID)
	return l
}

// Clone returns a deep copy of the ticket settings
func (t TicketSettings) Clone() TicketSettings {
	t.CategoryID = cloneString(t.CategoryID)
	t.SupportRoleID = cloneString(t.SupportRoleID)
	return t
}

// Clone returns a deep copy of the level settings
func (l LevelSettings) Clone() LevelSettings {
	l.AnnounceChannelID = cloneString(l.AnnounceChannelID)
	return l
}

// IsSection reports whether name is a patchable configuration section
func IsSection(name string) bool {
	switch name {
	case SectionWelcome, SectionLog, SectionTickets, SectionLevels, SectionEconomy:
		return true
	}
	return false
}

// Section returns the named section of c, or nil for an unknown name
func (c GuildConfig) Section(name string) any {
	switch name {
	case SectionWelcome:
		return c.Welcome
	case SectionLog:
		return c.Log
	case SectionTickets:
		return c.Tickets
	case SectionLevels:
		return c.Levels
	case SectionEconomy:
		return c.Economy
	}
	return nil
}

// ResolveSection maps a section name or its dashboard alias ("welcomer")
// to the canonical section name
func ResolveSection(name string) (string, bool) {
	if name == "welcomer" {
		return SectionWelcome, true
	}
	return name, IsSection(name)
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
