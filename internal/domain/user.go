package domain

import "context"

type User struct {
	ID   string
	Name string
}

type userCtxKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext reports the authenticated user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	if ctx == nil {
		return User{}, false
	}
	u, ok := ctx.Value(userCtxKey{}).(User)
	if !ok || u.ID == "" {
		return User{}, false
	}
	return u, true
}
