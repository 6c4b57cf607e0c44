package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// dispatchTotal counts fire-and-forget deliveries by channel and result
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_dispatch_total",
		Help: "Notification and SMS dispatches by channel and result",
	}, []string{"channel", "result"})

	// dispatchDuration tracks how long a delivery took, including failures
	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gallery_dispatch_duration_seconds",
		Help:    "Dispatch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
	}, []string{"channel"})

	// engagementTotal counts successful engagement actions
	engagementTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_engagement_actions_total",
		Help: "Successful engagement actions by action",
	}, []string{"action"})
)

const (
	channelNotification = "notification"
	channelSMS          = "sms"

	resultOK     = "ok"
	resultFailed = "failed"
)
