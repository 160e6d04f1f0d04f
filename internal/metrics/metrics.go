package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkboard_signups_total",
		Help: "Successful user signups.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkboard_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"status"})

	LinksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkboard_links_created_total",
		Help: "Links created through the post operation.",
	})

	FeedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkboard_feed_requests_total",
		Help: "Feed queries served.",
	})

	FeedCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkboard_feed_cache_total",
		Help: "Feed cache lookups by result (hit or miss).",
	}, []string{"result"})

	VotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkboard_votes_total",
		Help: "Votes recorded.",
	})
)
