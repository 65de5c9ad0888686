package utils

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	UserRoleKey  contextKey = "role"
	StoreIDKey   contextKey = "store_id"
)

// SetUserContext sets session info into context (called by auth middleware).
func SetUserContext(ctx context.Context, id, email, role string, storeID *string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	if storeID != nil {
		ctx = context.WithValue(ctx, StoreIDKey, *storeID)
	}
	return ctx
}

// GetUserIDFromContext retrieves the session user id safely.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

// GetStoreIDFromContext retrieves the vendor's store id, if the session has one.
func GetStoreIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(StoreIDKey).(string)
	return id, ok
}
