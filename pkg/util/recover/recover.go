package recover

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// Panic recovers a panic and logs it with the stack. Use it deferred at the
// top of goroutines.
func Panic(log *zap.Logger) {
	if e := recover(); e != nil {
		log.Error("recovered from panic", zap.String("panic", fmt.Sprint(e)))
		log.Info(string(debug.Stack()))
	}
}
