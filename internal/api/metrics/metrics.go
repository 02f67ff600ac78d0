// Package metrics defines the custom Prometheus metrics of the outfit API.
// Metrics register with the default registry on package initialisation and
// are served together with the echoprometheus HTTP metrics on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "outfitshare"

// ── Accounts ──────────────────────────────────────────────────────────────────

var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of accounts deleted.",
	},
)

// ── Outfits ───────────────────────────────────────────────────────────────────

var OutfitsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outfits_created_total",
		Help:      "Total number of outfits posted.",
	},
)

var OutfitsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outfits_deleted_total",
		Help:      "Total number of outfits removed through bulk delete.",
	},
)

// LikesToggledTotal counts like toggles.
// Label:
//   - action: "added" or "removed"
var LikesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Total number of like toggles, by resulting action.",
	},
	[]string{"action"},
)

// ── Comments ──────────────────────────────────────────────────────────────────

// CommentsTotal counts comment mutations.
// Label:
//   - op: "created", "updated" or "deleted"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment mutations, by operation.",
	},
	[]string{"op"},
)

// ── Image search ──────────────────────────────────────────────────────────────

// ImageSearchesTotal counts proxied Unsplash searches.
// Label:
//   - result: "ok" or "error"
var ImageSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_searches_total",
		Help:      "Total number of image searches proxied to Unsplash, by result.",
	},
	[]string{"result"},
)

var ImageSearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_search_duration_seconds",
		Help:      "Duration of image searches including cache lookups.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Reconciliation ────────────────────────────────────────────────────────────

// ReconcileRepairsTotal counts repairs made by reconciliation passes.
// Label:
//   - kind: "orphan_comments", "outfits_relinked" or "dangling_likes"
var ReconcileRepairsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_repairs_total",
		Help:      "Total number of referential repairs made by reconciliation.",
	},
	[]string{"kind"},
)
