// Package metrics exposes Prometheus collectors for the storage layer,
// the dashboard API and the Discord command handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentLoads counts document hydrations by document and result
	DocumentLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toothless",
		Subsystem: "store",
		Name:      "document_loads_total",
		Help:      "Document hydrations from the storage backend.",
	}, []string{"document", "result"})

	// DocumentSaves counts write-through saves by document and result
	DocumentSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toothless",
		Subsystem: "store",
		Name:      "document_saves_total",
		Help:      "Write-through saves to the storage backend.",
	}, []string{"document", "result"})

	// SaveDuration observes how long a save takes per document
	SaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "toothless",
		Subsystem: "store",
		Name:      "save_duration_seconds",
		Help:      "Time spent persisting a document.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"document"})

	// PendingWrites reports saves queued while the database is offline
	PendingWrites = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "toothless",
		Subsystem: "store",
		Name:      "pending_writes",
		Help:      "Documents waiting to be synced to an offline database.",
	})

	// CommandsExecuted counts slash command executions
	CommandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toothless",
		Subsystem: "discord",
		Name:      "commands_total",
		Help:      "Slash commands executed, by command and result.",
	}, []string{"command", "result"})

	// XPAwarded counts message XP grants, labelled by whether the grant
	// caused a level-up
	XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toothless",
		Subsystem: "levels",
		Name:      "xp_awards_total",
		Help:      "Message XP grants.",
	}, []string{"level_up"})

	// MemberEvents counts join and leave handling
	MemberEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toothless",
		Subsystem: "discord",
		Name:      "member_events_total",
		Help:      "Member join and leave events handled.",
	}, []string{"event"})

	// HTTPRequests counts dashboard API requests
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toothless",
		Subsystem: "web",
		Name:      "requests_total",
		Help:      "Dashboard API requests, by route and status.",
	}, []string{"route", "status"})
)

// Result labels
const (
	ResultOK      = "ok"
	ResultMissing = "missing"
	ResultError   = "error"
)
