package fetch

// Config holds configuration for the origin HTTP client.
type Config struct {
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int
	// Concurrency limits parallel requests in a batch.
	Concurrency int
	// UserAgent is sent with every request.
	UserAgent string
}
