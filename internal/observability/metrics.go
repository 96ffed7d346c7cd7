package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helenite_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SearchRequests counts external search-index calls by index and outcome.
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helenite_search_requests_total",
		Help: "Total number of external search index requests",
	}, []string{"index", "outcome"})

	// FriendRequestTransitions counts friend-request state transitions.
	FriendRequestTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helenite_friend_request_transitions_total",
		Help: "Friend request lifecycle transitions by kind",
	}, []string{"transition"})

	// LikeToggles counts like toggles by result.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helenite_like_toggles_total",
		Help: "Like toggles by result (liked or unliked)",
	}, []string{"result"})
)
