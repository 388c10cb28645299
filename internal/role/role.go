// Package role ranks callers. A caller may do anything a lower rank may do.
package role

import (
	"math"

	"github.com/matt-dz/foodgram/internal/database"
)

type Role int

const (
	RoleAdmin     Role = 200
	RoleUser      Role = 100
	RoleAnonymous Role = 0
	RoleUnknown   Role = math.MinInt
)

var names = map[Role]string{
	RoleAdmin:     "admin",
	RoleUser:      "user",
	RoleAnonymous: "anonymous",
}

func (r Role) String() string {
	if name, ok := names[r]; ok {
		return name
	}
	return "unknown"
}

// AtLeast reports whether r ranks at or above required. RoleUnknown never does.
func (r Role) AtLeast(required Role) bool {
	return r != RoleUnknown && r >= required
}

// FromDB maps the users.role column. Values the service does not know map
// to RoleUnknown.
func FromDB(r database.Role) Role {
	switch r {
	case database.RoleAdmin:
		return RoleAdmin
	case database.RoleUser:
		return RoleUser
	default:
		return RoleUnknown
	}
}
