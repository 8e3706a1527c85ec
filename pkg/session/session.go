package session

import "time"

// Session is one bounded window of visitor activity.
type Session struct {
	ID           string    `json:"sessionId"`
	StartTime    time.Time `json:"startTime"`
	LastActivity time.Time `json:"lastActivity"`
	PageViews    int       `json:"pageViews"`
	Referrer     string    `json:"referrer,omitempty"`
	EntryPath    string    `json:"entryPath"`
}

// IdleFor reports how long the session has been without activity as of now.
func (s Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActivity)
}
