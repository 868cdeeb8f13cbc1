package device

import (
	"time"

	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
)

// Observer receives session instrumentation. Implemented by
// metrics.Collector. Methods are called inline and must be cheap.
type Observer interface {
	// ObserveOperation records a completed session operation.
	ObserveOperation(t Type, op string, st status.Status, elapsed time.Duration)

	// ObserveTransfer records bytes moved over the transport.
	ObserveTransfer(t Type, dir log.Direction, n int)

	// ObserveRetry records a retried transfer.
	ObserveRetry(t Type, op string)
}

type noopObserver struct{}

func (noopObserver) ObserveOperation(Type, string, status.Status, time.Duration) {}
func (noopObserver) ObserveTransfer(Type, log.Direction, int)                   {}
func (noopObserver) ObserveRetry(Type, string)                                  {}
