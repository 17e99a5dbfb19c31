package models

// BotInfo is the public snapshot of the bot shown on the dashboard
type BotInfo struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Avatar   string         `json:"avatar"`
	Guilds   int            `json:"guilds"`
	Ready    bool           `json:"isReady"`
	Commands map[string]int `json:"commands"`
	Uptime   int64          `json:"uptime"`
}

// GuildChannel is a channel or category the dashboard can pick from
type GuildChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GuildRole is a role the dashboard can pick from
type GuildRole struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// GuildInfo describes a guild as seen from the bot's cache
type GuildInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	MemberCount int            `json:"memberCount"`
	Channels    []GuildChannel `json:"channels"`
	Categories  []GuildChannel `json:"categories"`
	Roles       []GuildRole    `json:"roles"`
}
