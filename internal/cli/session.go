package cli

import (
	"context"

	"github.com/example/madar/internal/ctxutil"
	"github.com/example/madar/internal/wire"
)

// globalActor stores the logged-in actor for the current CLI invocation.
// Set once at startup by resumeSession.
var globalActor ctxutil.Actor

// resumeSession loads the session file, rejecting missing or idle sessions,
// and stores the actor for NewContext.
func resumeSession() error {
	svc, err := wire.App()
	if err != nil {
		return err
	}
	session, err := svc.Auth.Resume(context.Background())
	if err != nil {
		return err
	}
	globalActor = ctxutil.Actor{
		UserID:    session.UserID,
		Role:      session.Role,
		ProfileID: session.ProfileID,
	}
	return nil
}

// NewContext creates a context.Background() with the current actor embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalActor.UserID != "" {
		return ctxutil.WithActor(ctx, globalActor)
	}
	return ctx
}

// bootstrapActor acts for commands that run before any account exists.
var bootstrapActor = ctxutil.Actor{UserID: "SYSTEM", Role: "Management"}

// services returns the wired application.
func services() (*wire.Services, error) {
	return wire.App()
}
