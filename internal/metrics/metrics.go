package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flow label values.
const (
	FlowSubmit  = "submit"
	FlowRefresh = "refresh"
)

var (
	RefreshCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedpoll_refresh_cycles_total",
		Help: "Number of completed polling cycles",
	})
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feedpoll_refresh_cycle_duration_seconds",
		Help:    "Time from the start of a polling cycle until every fetch settled",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms .. ~25s
	})
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedpoll_fetch_failures_total",
		Help: "Feed fetches or parses that failed, by flow",
	}, []string{"flow"})
	PostsAdmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedpoll_posts_admitted_total",
		Help: "Posts added to the post list, by flow",
	}, []string{"flow"})
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedpoll_submissions_total",
		Help: "Feed submissions by outcome message key",
	}, []string{"result"})
	SubscribedFeeds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feedpoll_subscribed_feeds",
		Help: "Number of subscribed feed URLs",
	})
)
