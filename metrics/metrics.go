package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	XPGrants = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "levelbot_xp_grants_total",
		Help: "The total number of XP grants applied",
	}, []string{"source"})

	XPGranted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "levelbot_xp_granted_total",
		Help: "The total amount of XP granted, after multipliers",
	})

	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "levelbot_level_ups_total",
		Help: "The total number of level-ups",
	})

	MessagesThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "levelbot_messages_throttled_total",
		Help: "The total number of messages ignored due to the XP cooldown",
	})

	GrantFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "levelbot_grant_failures_total",
		Help: "The total number of XP grants that failed to persist",
	})
)
