package domain

// EmailSummary is the normalized projection of one fetched mailbox message.
type EmailSummary struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ThreadMessage is one prior message of an email thread, as supplied by the
// caller. Date is an RFC 3339 timestamp string.
type ThreadMessage struct {
	From string `json:"from"`
	Date string `json:"date"`
	Body string `json:"body"`
}
