// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for unsafe HTTP methods, chiefly
// the answer submission endpoint. Because a submission replaces the
// participant's full answer set, a retried request with the same key can be
// acknowledged without re-running the write. The middleware validates an
// Idempotency-Key request header, optionally performs a lookup to detect a
// previously completed request for the same (participant code, key) pair, and
// annotates the request context so downstream code can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - bypass rate limiting when a replay is served
//
// Persistence stays decoupled behind the narrow IdempotencyLookup type; TTL
// enforcement belongs in the lookup implementation.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the canonical request header that clients use to
// convey an idempotency key for unsafe operations. The value is expected to
// be stable for a given semantic operation so that retries can be safely
// deduplicated.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used internally to stash idempotency state; referenced via
// accessor helpers only.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: true when a stored replay exists
	ctxKeyRateBypass = "rate.bypass" // bool: true to skip rate limiting
)

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by IdempotencyValidator. The second return value indicates
// presence. Handlers should prefer this over reading the header directly.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware detected that this request would
// replay a previously completed submission for the same participant and key.
// When true, handlers may short-circuit and acknowledge without re-writing.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation behavior for
// IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative
	// RFC 7230-like token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// IdempotencyLookup answers whether a successful, still-valid result exists
// for (participantCode, key) at the given time. Implementations typically
// consult a stored record carrying the previous response status and its TTL
// window. Return exists=true when the prior response can be replayed; return
// an error only for lookup failures, which must not block normal processing.
type IdempotencyLookup func(ctx context.Context, participantCode, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header (if present),
// stashes it in the request context, and optionally checks for a prior
// completed request via the supplied lookup. The participant identity is
// taken from the :participantCode route parameter, which is the bearer
// credential on submission routes.
//
// Behavior:
//   - Header absent: the middleware is a no-op.
//   - Header fails validation: responds 400 with a compact error body.
//   - Lookup indicates a replay: sets the replay and rate-bypass flags.
//   - Always invokes the next handler unless validation fails.
//
// The middleware does not itself return a cached payload; handlers stay in
// control of how replays are served.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			participant := c.Param("participantCode")
			now := time.Now().UTC()

			if exists, _ := lookup(c.Request.Context(), participant, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
