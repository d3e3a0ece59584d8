// Package app contains the application layer: service implementations over the core guards and secondary ports.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/ctxutil"
	"github.com/example/madar/internal/ports/secondary"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// today is the actor's calendar date.
func (c Clock) today() time.Time {
	return calendar.Day(c())
}

func actorOf(ctx context.Context) ctxutil.Actor {
	return ctxutil.ActorFromContext(ctx)
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// activity records entity changes without ever failing the caller.
type activity struct {
	writer secondary.LogWriter
	logger *zap.Logger
}

func (a activity) created(ctx context.Context, entityType, entityID string) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogCreate(ctx, entityType, entityID); err != nil {
		a.logger.Warn("activity log write failed", zap.String("entity", entityID), zap.Error(err))
	}
}

func (a activity) updated(ctx context.Context, entityType, entityID, field, oldValue, newValue string) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogUpdate(ctx, entityType, entityID, field, oldValue, newValue); err != nil {
		a.logger.Warn("activity log write failed", zap.String("entity", entityID), zap.Error(err))
	}
}

func (a activity) deleted(ctx context.Context, entityType, entityID string) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogDelete(ctx, entityType, entityID); err != nil {
		a.logger.Warn("activity log write failed", zap.String("entity", entityID), zap.Error(err))
	}
}

// pageBounds normalises a 1-based page and returns the page, total pages and offset.
func pageBounds(page, size, total int) (int, int, int) {
	if size <= 0 {
		size = 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page, pages, (page - 1) * size
}

func isNotFound(err error) bool {
	return apperr.Is(err, apperr.KindNotFound)
}
