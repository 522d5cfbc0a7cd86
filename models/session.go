package models

import "time"

// Session is the client's persisted login: the access token together with
// the user snapshot it was issued for. Both are always saved and cleared
// together.
type Session struct {
	Token   string    `json:"token"`
	User    User      `json:"user"`
	SavedAt time.Time `json:"savedAt"`
}

// Empty reports whether s holds no login.
func (s Session) Empty() bool {
	return s.Token == ""
}
