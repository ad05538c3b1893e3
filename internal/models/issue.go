package models

// IssueLabel is a GitHub label on an open issue.
type IssueLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Issue is an open issue from an organization repository, served to the
// event page from the poller's cache.
type Issue struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	HTMLURL    string       `json:"html_url"`
	Repository string       `json:"repository"`
	Labels     []IssueLabel `json:"labels"`
}
