// Package httputil provides retry helpers for remote lookups.
//
// [Retry] runs an operation again when it fails with a [RetryableError],
// doubling the delay after each attempt. Clients wrap transient failures
// (connection errors, 5xx responses, 429 rate limits) in RetryableError and
// return every other error as is:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// A [Policy] sets the number of attempts and the delays. A 429 response
// wrapped as errors.RateLimitedError makes Retry wait at least the server's
// Retry-After, up to Policy.MaxDelay. NCBI E-utilities allow three requests
// per second without an API key, so a burst of citation lookups routinely
// sees 429 responses that succeed on the second attempt.
package httputil
