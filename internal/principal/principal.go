// Package principal identifies the caller of a service operation.
package principal

import (
	"context"

	"github.com/matt-dz/foodgram/internal/role"
)

// Principal is passed explicitly to every service call. The zero value is
// the anonymous caller.
type Principal struct {
	UserID int64
	Role   role.Role
}

func Anonymous() Principal {
	return Principal{Role: role.RoleAnonymous}
}

func User(id int64, r role.Role) Principal {
	return Principal{UserID: id, Role: r}
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != 0 && p.Role >= role.RoleUser
}

func (p Principal) IsAdmin() bool {
	return p.IsAuthenticated() && p.Role >= role.RoleAdmin
}

// CanModify reports whether p may change an object owned by ownerID.
func (p Principal) CanModify(ownerID int64) bool {
	return p.IsAdmin() || (p.IsAuthenticated() && p.UserID == ownerID)
}

type principalKeyType struct{}

var principalKey principalKeyType

func WithCtx(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromCtx returns the anonymous principal when none was stored.
func FromCtx(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}
	return Anonymous()
}
