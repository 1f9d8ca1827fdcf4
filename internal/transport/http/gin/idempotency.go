package httpgin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
)

const idemLockTTL = 60 * time.Second

// idempotent runs create at most once per Idempotency-Key within scope and
// replays the stored response for repeated keys. Without a key or a store it
// simply runs create.
func idempotent(
	c *gin.Context,
	idem *redisrepo.IdempotencyStore,
	scope string,
	create func() (any, bool),
) {
	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if idem == nil || idemKey == "" {
		if resp, ok := create(); ok {
			c.JSON(http.StatusCreated, resp)
		}
		return
	}

	ctx := c.Request.Context()
	storageKey := redisrepo.KeyIdem(scope, idemKey)

	replay := func() bool {
		payload, ok, _ := idem.GetResult(ctx, storageKey)
		if !ok {
			return false
		}
		c.Header("Idempotency-Key", idemKey)
		c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
		return true
	}

	if replay() {
		return
	}

	locked, err := idem.AcquireLock(ctx, storageKey, idemLockTTL)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !locked {
		if replay() {
			return
		}
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
		return
	}

	resp, ok := create()
	if !ok {
		_ = idem.Release(ctx, storageKey)
		return
	}

	b, _ := json.Marshal(resp)
	_ = idem.SaveResult(ctx, storageKey, string(b))
	c.Header("Idempotency-Key", idemKey)
	c.Data(http.StatusCreated, "application/json; charset=utf-8", b)
}
