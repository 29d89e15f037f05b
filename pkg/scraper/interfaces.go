package scraper

// Fetcher is the network collaborator the orchestrator drives. It is an
// interface so tests can substitute canned pages for the real client.
type Fetcher interface {
	// FetchPage retrieves a URL and returns the body as text.
	FetchPage(url string) (string, error)
	// FetchBytes retrieves a URL and returns the raw body.
	FetchBytes(url string) ([]byte, error)
}
