package session

import (
	"fmt"

	"github.com/pettrack/console/model"
)

// Session holds the attributes of the console's auth session. The zero
// value means "no session". AccessToken and User are set and cleared
// together; callers never observe one without the other.
type Session struct {
	AccessToken string      `json:"accessToken"`
	User        *model.User `json:"user"`
}

// Empty reports whether there is no active session
func (s Session) Empty() bool {
	return s.AccessToken == ""
}

// Role returns the session user's role tag, or "" when absent
func (s Session) Role() model.UserRole {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s Session) String() string {
	user := "<nil>"
	if s.User != nil {
		user = s.User.Email
	}
	return fmt.Sprintf("user=%s authenticated=%t", user, !s.Empty())
}
