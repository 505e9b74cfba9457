package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of successful logins.",
	})

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_refreshes_total",
		Help: "Total number of successful token refreshes.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Total number of token verification attempts by type and status.",
		},
		[]string{"type", "status"},
	)

	mediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_media_uploads_total",
			Help: "Total number of media upload attempts by kind and status.",
		},
		[]string{"kind", "status"},
	)
)
