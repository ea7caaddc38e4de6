// Package retry re-runs an operation with exponential backoff.
//
// The browser-facing code never retries: a failed wait is terminal for the
// spec. Retry exists for fixture generators talking to external services,
// where a caller can opt into more than one attempt:
//
//	id, err := retry.DoWithData(ctx, func(ctx context.Context) (string, error) {
//	    return register(ctx)
//	}, retry.WithMaxAttempts(3), retry.WithInitialDelay(500*time.Millisecond))
//
// Mark errors that must not be retried with Permanent; Do returns the
// wrapped error as-is:
//
//	if resp.StatusCode == http.StatusBadRequest {
//	    return retry.Permanent(err)
//	}
//
// Backoff timing comes from k8s.io/apimachinery's wait.Backoff, so the
// Multiplier and Jitter options behave like its Factor and Jitter fields.
package retry
