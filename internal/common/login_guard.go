package common

import (
	"time"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
)

// LoginGuard counts consecutive failed logins per client and blocks a client that reaches
// MaxFailures for BlockDuration. State lives in a CacheInterface so Redis can share it.
type LoginGuard struct {
	cache         CacheInterface
	MaxFailures   int
	BlockDuration time.Duration
}

func NewLoginGuard(cache CacheInterface, maxFailures int, blockDuration time.Duration) *LoginGuard {
	if maxFailures < 1 {
		maxFailures = 5
	}
	if blockDuration <= 0 {
		blockDuration = 15 * time.Minute
	}
	return &LoginGuard{cache: cache, MaxFailures: maxFailures, BlockDuration: blockDuration}
}

func failuresKey(client string) string {
	return string(constants.CachePrefixLoginFailures) + client
}

func blockedKey(client string) string {
	return string(constants.CachePrefixLoginBlocked) + client
}

// IsBlocked reports whether client is inside a block window
func (g *LoginGuard) IsBlocked(client string) bool {
	_, blocked := g.cache.Get(blockedKey(client))
	return blocked
}

// RecordFailure counts one failure and reports whether client is now blocked
func (g *LoginGuard) RecordFailure(client string) bool {
	// stale counters expire after twice the block window
	count, err := g.cache.Increment(failuresKey(client), 2*g.BlockDuration)
	if err != nil {
		logging.Warn("Failed to record login failure", "client", client, "error", err)
		return false
	}

	if count >= g.MaxFailures {
		g.cache.Set(blockedKey(client), time.Now().Unix(), g.BlockDuration)
		g.cache.Delete(failuresKey(client))
		logging.Warn("Client blocked after consecutive failed logins",
			"client", client,
			"failures", count,
			"block_duration", g.BlockDuration.String(),
		)
		return true
	}
	return false
}

// RecordSuccess clears the failure counter of client
func (g *LoginGuard) RecordSuccess(client string) {
	g.cache.Delete(failuresKey(client))
}

// FailureCount returns the current consecutive failure count of client
func (g *LoginGuard) FailureCount(client string) int {
	v, ok := g.cache.Get(failuresKey(client))
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
