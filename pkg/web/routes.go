package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultLeaderboardSize = 20
	maxLeaderboardSize     = 100
)

// dashboardSections maps the dashboard's route names to config sections
var dashboardSections = map[string]string{
	"welcomer": models.SectionWelcome,
	"log":      models.SectionLog,
	"tickets":  models.SectionTickets,
	"levels":   models.SectionLevels,
}

// BotProvider exposes the live bot state to the API
type BotProvider interface {
	IsReady() bool
	BotInfo() models.BotInfo
	GuildInfo(guildID string) (models.GuildInfo, bool)
}

// StatusReporter is implemented by storage backends that can report health
type StatusReporter interface {
	GetStatus() (string, bool)
}

// API holds the dependencies of the dashboard routes
type API struct {
	Repos *database.Repositories
	// Bot may be nil while the gateway is not connected
	Bot  BotProvider
	Auth *Authenticator
	Live *LiveHub
}

// SetupAPIRoutes registers every route on s
func SetupAPIRoutes(s *Server, api *API) {
	if api.Auth == nil {
		api.Auth = NewAuthenticator("")
	}

	s.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := s.Group("/api")
	{
		root.GET("/health", api.healthHandler)
		root.GET("/status", api.statusHandler)
		root.GET("/bot", api.botInfoHandler)
	}

	guild := root.Group("/guild/:id", api.Auth.RequireGuildAccess())
	{
		guild.GET("", api.guildHandler)
		guild.POST("/:section", api.patchSectionHandler)
		guild.GET("/economy/leaderboard", api.economyLeaderboardHandler)
		guild.GET("/levels/leaderboard", api.levelsLeaderboardHandler)
		if api.Live != nil {
			guild.GET("/live", api.Live.Handle)
		}
	}
}

func (a *API) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "toothless",
		"message": "Toothless Go is running",
	})
}

func (a *API) statusHandler(c *gin.Context) {
	storageStatus, storageOnline := "🟢 | En linea", true
	if reporter, ok := a.Repos.Store.Backend().(StatusReporter); ok {
		storageStatus, storageOnline = reporter.GetStatus()
	}

	botOnline := a.Bot != nil && a.Bot.IsReady()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"backend":  a.Repos.Store.Backend().String(),
			"status":   storageStatus,
			"isOnline": storageOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

func (a *API) botInfoHandler(c *gin.Context) {
	if a.Bot == nil || !a.Bot.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}
	c.JSON(http.StatusOK, a.Bot.BotInfo())
}

func (a *API) guildHandler(c *gin.Context) {
	guildID := c.Param("id")
	cfg := a.Repos.Guilds.Get(guildID)

	resp := gin.H{
		"id":       guildID,
		"settings": cfg,
	}
	if a.Bot != nil {
		if info, ok := a.Bot.GuildInfo(guildID); ok {
			resp["name"] = info.Name
			resp["icon"] = info.Icon
			resp["memberCount"] = info.MemberCount
			resp["channels"] = info.Channels
			resp["categories"] = info.Categories
			resp["roles"] = info.Roles
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) patchSectionHandler(c *gin.Context) {
	section, ok := dashboardSections[c.Param("section")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "Sección de configuración desconocida.",
			"status":  404,
		})
		return
	}

	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "El cuerpo debe ser un objeto JSON.",
		})
		return
	}

	cfg, err := a.Repos.Guilds.Patch(c.Param("id"), section, partial)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, database.ErrInvalidPatch) || errors.Is(err, database.ErrUnknownSection) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cfg.Section(section)})
}

func leaderboardLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLeaderboardSize)))
	if err != nil || limit <= 0 {
		return defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		return maxLeaderboardSize
	}
	return limit
}

func (a *API) economyLeaderboardHandler(c *gin.Context) {
	board := a.Repos.Economy.Leaderboard(c.Param("id"), leaderboardLimit(c))
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

func (a *API) levelsLeaderboardHandler(c *gin.Context) {
	board := a.Repos.Levels.Leaderboard(c.Param("id"), leaderboardLimit(c))
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}
