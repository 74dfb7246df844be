package domain

// TaskMessage is one inbound email considered for task extraction.
type TaskMessage struct {
	ThreadID string `json:"threadId"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// TaskItem is one action item extracted by the model. Items with both date
// and time come first (earliest to latest), then date-only items; the model
// produces that order and it is kept as-is.
type TaskItem struct {
	Task     string `json:"task"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	ThreadID string `json:"threadId"`
}
