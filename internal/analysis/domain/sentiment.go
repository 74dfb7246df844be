package domain

// SentimentResult is the outcome of one sentiment analysis. Degraded marks a
// substituted neutral score after a failed remote call, so callers can tell
// it apart from a genuine 50.
type SentimentResult struct {
	Score    int
	Degraded bool
}
