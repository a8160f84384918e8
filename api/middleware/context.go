package middleware

import (
	"context"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
)

type contextKey string

const (
	ctxSessionID contextKey = "staff_session_id"
	ctxRole      contextKey = "staff_role"
	ctxStore     contextKey = "store"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) enums.StaffRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.StaffRole); ok {
		return v
	}
	return ""
}

// StoreFromContext returns the location the staff session was opened for.
func StoreFromContext(ctx context.Context) enums.Store {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStore).(enums.Store); ok {
		return v
	}
	return ""
}

// WithStaff injects the authenticated session into the context.
func WithStaff(ctx context.Context, sessionID string, store enums.Store, role enums.StaffRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSessionID, sessionID)
	ctx = context.WithValue(ctx, ctxStore, store)
	return context.WithValue(ctx, ctxRole, role)
}
