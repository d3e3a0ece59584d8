// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// Actor identifies who is performing an operation.
type Actor struct {
	UserID    string // USER-xxx
	Role      string // Management, Auditor, AreaOwner, ResponsiblePerson
	ProfileID string // MGMT-xxx, AUDR-xxx, AO-xxx or RESP-xxx
}

// WithActor returns a context with the actor embedded.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the actor from context, or the zero Actor if not set.
func ActorFromContext(ctx context.Context) Actor {
	if v, ok := ctx.Value(ActorKey{}).(Actor); ok {
		return v
	}
	return Actor{}
}

// ActorIDFromContext returns the acting profile ID, falling back to the user ID.
func ActorIDFromContext(ctx context.Context) string {
	a := ActorFromContext(ctx)
	if a.ProfileID != "" {
		return a.ProfileID
	}
	return a.UserID
}
