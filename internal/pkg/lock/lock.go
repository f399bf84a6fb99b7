package lock

import (
	"context"
	"net/http"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

// ErrHeld is returned when the key is already acquired by another
// in-flight operation. Callers surface it as a 409 and do not retry.
var ErrHeld = apperror.New(http.StatusConflict, "another booking for this room and date range is being processed, please retry")

// ReleaseFunc releases an acquired key. It must be safe to call exactly
// once on every exit path, including error paths.
type ReleaseFunc func()

// Provider hands out exclusive, fail-fast advisory locks keyed by
// string. An acquisition attempt on a held key fails immediately with
// ErrHeld rather than queueing.
//
// The in-memory implementation only serializes within one process; the
// Redis implementation extends exclusion across instances.
type Provider interface {
	TryAcquire(ctx context.Context, key string) (ReleaseFunc, error)
}
