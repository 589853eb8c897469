package scheduler

import (
	"log/slog"
	"time"

	"github.com/mhdreza10/quizauth/internal/ratelimit"
	"github.com/robfig/cron/v3"
)

// maxIdle is how long a username's failed-login bucket survives untouched
// before the sweep drops it.
const maxIdle = 30 * time.Minute

// Run starts a background sweep that prunes idle failed-login buckets every
// five minutes so the limiter's memory stays bounded. The returned cron can be
// stopped on shutdown.
func Run(limiter *ratelimit.FailedLogins) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 5m", func() {
		if n := limiter.Prune(maxIdle); n > 0 {
			slog.Debug("pruned idle login limiters", "removed", n, "remaining", limiter.Size())
		}
	})
	if err != nil {
		// The expression is a constant; failing here is a programming error.
		panic(err)
	}

	c.Start()
	return c
}
