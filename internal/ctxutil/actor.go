// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user's ID.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// RoleKey is the context key for the acting user's role.
type RoleKey struct{}

// WithActorID returns a context with the acting user's ID embedded
// (e.g. "USER-003"). Service operations take the actor as an explicit
// request field; the context value is the entry-point fallback.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v := ctx.Value(ActorKey{}); v != nil {
		return v.(string)
	}
	return ""
}

// WithRole returns a context with the acting user's role embedded
// ("annotator", "evaluator", or "admin").
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey{}, role)
}

// RoleFromContext returns the role from context, or empty string if not set.
func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(RoleKey{}); v != nil {
		return v.(string)
	}
	return ""
}
