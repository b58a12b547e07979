package ragproxy

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardKnop/ragproxy/pkg/fields"
)

// waitUntilDone polls an ingestion operation until the backend reports it
// done. The loop is deliberately unbounded; ingestion of a large document can
// take a long time and the caller's context is the cancellation hook. Each
// wait is a cooperative delay, never a busy loop.
func (rp *ragProxy) waitUntilDone(ctx context.Context, operation RawValue) (RawValue, error) {
	current := operation
	for !fields.Bool(fields.Resolve(current, "done")) {
		if err := wait(ctx, rp.pollInterval); err != nil {
			return current, fmt.Errorf("waiting for operation: %w", err)
		}

		var err error
		current, err = rp.backend.PollOperation(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("polling operation: %w", err)
		}
	}

	if errMsg := terminalError(current); errMsg != "" {
		return current, fmt.Errorf("operation failed: %s", errMsg)
	}

	return current, nil
}

// terminalError decides whether a done operation finished in the Failed
// state. Attribute-shaped errors carry a zero code when unset, so only a
// non-zero code counts; mapping-shaped errors count whenever present.
func terminalError(raw RawValue) string {
	errValue := fields.Resolve(raw, "error")
	if errValue == nil {
		return ""
	}
	if fields.IsMapping(errValue) {
		if msg := fields.String(fields.Resolve(errValue, "message")); msg != "" {
			return msg
		}
		return fields.String(errValue)
	}
	code := fields.String(fields.Resolve(errValue, "code"))
	if code == "" || code == "0" {
		return ""
	}
	return fields.String(errValue)
}

func wait(ctx context.Context, interval time.Duration) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
