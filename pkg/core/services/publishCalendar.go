package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/internal/config"
	"github.com/stbarnabas/serveteam/pkg/db"
)

// CalendarEvent is one event payload for calendar publishing
type CalendarEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// CalendarClient defines the calendar operations needed for publishing
type CalendarClient interface {
	CreateEvent(calendarID string, event CalendarEvent) (string, error)
}

// PublishCalendarResult contains the IDs of the created calendar events
type PublishCalendarResult struct {
	SolutionID       string
	CalendarEventIDs []string
}

// PublishCalendar pushes a solution's events to the configured calendar, one
// calendar event per rota event with the serving team in the description.
// An empty solutionID selects the most recent solution.
func PublishCalendar(
	ctx context.Context,
	database ViewSolutionStore,
	client CalendarClient,
	cfg *config.Config,
	logger *zap.Logger,
	solutionID string,
) (*PublishCalendarResult, error) {
	if cfg.CalendarID == "" {
		return nil, fmt.Errorf("no calendarID configured")
	}

	view, err := ViewSolution(ctx, database, cfg.OrganizationID, solutionID, logger)
	if err != nil {
		return nil, err
	}

	events := make([]db.Event, 0, len(view.Events))
	for _, e := range view.Events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartsAt.Equal(events[j].StartsAt) {
			return events[i].StartsAt.Before(events[j].StartsAt)
		}
		return events[i].ID < events[j].ID
	})

	result := &PublishCalendarResult{SolutionID: view.Solution.ID}
	for _, event := range events {
		payload := CalendarEvent{
			Summary:     event.Name,
			Description: describeTeam(event.ID, view),
			Start:       event.StartsAt,
			End:         event.EndsAt,
		}

		logger.Debug("Publishing event",
			zap.String("event_id", event.ID),
			zap.String("summary", payload.Summary),
			zap.Time("start", payload.Start))

		calendarEventID, err := client.CreateEvent(cfg.CalendarID, payload)
		if err != nil {
			return nil, fmt.Errorf("failed to publish event %s: %w", event.ID, err)
		}
		result.CalendarEventIDs = append(result.CalendarEventIDs, calendarEventID)
	}

	logger.Info("Calendar published",
		zap.String("solution_id", view.Solution.ID),
		zap.String("calendar_id", cfg.CalendarID),
		zap.Int("events", len(result.CalendarEventIDs)))

	return result, nil
}

// describeTeam renders the serving team of one event as "Role: Name" lines,
// with unfilled slots called out
func describeTeam(eventID string, view *SolutionView) string {
	var lines []string

	for _, a := range view.Assignments {
		if a.EventID != eventID {
			continue
		}
		name := a.PersonID
		if person, ok := view.People[a.PersonID]; ok {
			name = person.Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s", a.Role, name))
	}
	for _, u := range view.Unfilled {
		if u.EventID != eventID {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: UNFILLED (%s)", u.Role, u.Reason))
	}

	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
