package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/scheduling"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// Clock resolves the current time and calendar day in the service timezone.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// SystemClock returns a Clock over time.Now in loc.
func SystemClock(loc *time.Location) Clock {
	return Clock{Location: loc, Now: time.Now}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Time returns the current instant in the service timezone.
func (c Clock) Time() time.Time {
	t := c.now()
	if c.Location != nil {
		t = t.In(c.Location)
	}
	return t
}

// Today returns the current calendar day.
func (c Clock) Today() domain.Date {
	return scheduling.Today(c.now(), c.Location)
}

// TimeOfDay returns the current wall-clock time.
func (c Clock) TimeOfDay() domain.TimeOfDay {
	t := c.Time()
	return domain.NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

func notFoundAs(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

func invalidate(ctx context.Context, store *cache.Store, logger *zap.Logger, agentID string, res domain.MutationResult) {
	if !res.Success || !store.Enabled() {
		return
	}
	if _, err := store.InvalidateAgent(ctx, agentID); err != nil {
		logger.Debug("cache invalidation skipped", zap.String("agent_id", agentID), zap.Error(err))
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// listPage fetches one page. A window count is absent when the page lies past
// the last row, so the total is then read from the first row instead.
func listPage[T any](page domain.Page, fetch func(domain.Page) ([]T, int, error)) ([]T, domain.Pagination, error) {
	page = page.Normalize()
	items, total, err := fetch(page)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	if len(items) == 0 && page.Number > 1 {
		if _, total, err = fetch(domain.Page{Number: 1, Size: 1}); err != nil {
			return nil, domain.Pagination{}, err
		}
	}
	return nonNil(items), domain.NewPagination(page, total), nil
}
