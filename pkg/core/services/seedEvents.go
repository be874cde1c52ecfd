package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/internal/config"
	"github.com/stbarnabas/serveteam/pkg/db"
)

// SeedEventsStore defines the database operations needed for seeding events
type SeedEventsStore interface {
	GetEvents(ctx context.Context, organizationID string, from, until time.Time) ([]db.Event, error)
	InsertEvents(ctx context.Context, events []db.Event) error
}

// SeedEventsResult contains the seeded events and how many occurrences were
// skipped because an event with the same name and start already existed
type SeedEventsResult struct {
	Created []db.Event
	Skipped int
}

// SeedEvents expands the configured event series into concrete events inside
// [from, until] and inserts them. Occurrences that already exist (same name
// and start time) are skipped, so re-seeding a window is safe.
func SeedEvents(
	ctx context.Context,
	database SeedEventsStore,
	cfg *config.Config,
	logger *zap.Logger,
	from, until time.Time,
) (*SeedEventsResult, error) {
	logger.Debug("Starting seedEvents",
		zap.Time("from", from),
		zap.Time("until", until),
		zap.Int("series_count", len(cfg.EventSeries)))

	if until.Before(from) {
		return nil, fmt.Errorf("window ends before it starts: %s to %s",
			from.Format("2006-01-02"), until.Format("2006-01-02"))
	}
	if len(cfg.EventSeries) == 0 {
		return nil, fmt.Errorf("no event series configured")
	}

	logger.Debug("Fetching existing events")
	existing, err := database.GetEvents(ctx, cfg.OrganizationID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing events: %w", err)
	}

	existingKeys := make(map[string]bool, len(existing))
	for _, e := range existing {
		existingKeys[eventKey(e.Name, e.StartsAt)] = true
	}

	result := &SeedEventsResult{}
	for i, series := range cfg.EventSeries {
		occurrences, err := expandSeries(series, from, until)
		if err != nil {
			return nil, fmt.Errorf("failed to expand eventSeries[%d] %q: %w", i, series.Name, err)
		}
		logger.Debug("Expanded series",
			zap.String("name", series.Name),
			zap.Int("occurrences", len(occurrences)))

		for _, event := range occurrences {
			event.OrganizationID = cfg.OrganizationID
			if existingKeys[eventKey(event.Name, event.StartsAt)] {
				result.Skipped++
				continue
			}
			result.Created = append(result.Created, event)
		}
	}

	if len(result.Created) == 0 {
		logger.Info("No new events to seed", zap.Int("skipped", result.Skipped))
		return result, nil
	}

	if err := database.InsertEvents(ctx, result.Created); err != nil {
		return nil, fmt.Errorf("failed to insert events: %w", err)
	}

	logger.Info("Events seeded",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// expandSeries generates one event per rrule occurrence inside [from, until].
// Occurrence dates come from the rrule; the time of day and duration come
// from the series definition.
func expandSeries(series config.EventSeries, from, until time.Time) ([]db.Event, error) {
	rule, err := rrule.StrToRRule(series.RRule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}

	startOfDay, err := time.Parse("15:04", series.StartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse startTime: %w", err)
	}

	rule.DTStart(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC))

	var events []db.Event
	for _, occurrence := range rule.Between(from, until, true) {
		start := time.Date(
			occurrence.Year(), occurrence.Month(), occurrence.Day(),
			startOfDay.Hour(), startOfDay.Minute(), 0, 0, time.UTC,
		)
		end := start.Add(time.Duration(series.DurationMinutes) * time.Minute)

		eventID := uuid.New().String()
		requirements := make([]db.RoleRequirement, len(series.Roles))
		for i, role := range series.Roles {
			requirements[i] = db.RoleRequirement{
				EventID:   eventID,
				Role:      role.Role,
				HeadCount: role.Count,
				Position:  i,
			}
		}

		events = append(events, db.Event{
			ID:           eventID,
			Name:         series.Name,
			StartsAt:     start,
			EndsAt:       end,
			Requirements: requirements,
		})
	}

	return events, nil
}

func eventKey(name string, start time.Time) string {
	return name + "|" + start.UTC().Format(time.RFC3339)
}
