package safego

import (
	"github.com/tailpoint/tailpoint/logger"
)

// Recovery turns a panic into a logged error so a background goroutine
// cannot take the process down silently; with fatal it exits instead.
func Recovery(fatal bool) {
	if r := recover(); r != nil {
		if fatal {
			logger.Fatalf("panic: %v", r)
		}
		logger.Errorf("panic: %v", r)
	}
}
