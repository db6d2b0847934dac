// Package lifecycle holds shared lifecycle settings.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and background work.
const DefaultTimeout = 15 * time.Second
