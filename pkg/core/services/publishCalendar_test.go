package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCalendarClient struct {
	created   []CalendarEvent
	createErr error
}

func (m *mockCalendarClient) CreateEvent(calendarID string, event CalendarEvent) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, event)
	return "cal-" + event.Summary, nil
}

func TestPublishCalendar_PublishesEventsInOrder(t *testing.T) {
	mock := viewFixture()
	client := &mockCalendarClient{}
	cfg := testConfig()
	cfg.CalendarID = "rota@example.com"

	result, err := PublishCalendar(context.Background(), mock, client, cfg, zap.NewNop(), "")
	require.NoError(t, err)

	assert.Equal(t, "sol-2", result.SolutionID)
	// sol-2 references the sunday event (unfilled) and midweek event
	require.Len(t, client.created, 2)

	// Chronological order: sunday (Mar 1) before midweek (Mar 4)
	assert.Equal(t, "Event sunday", client.created[0].Summary)
	assert.Equal(t, "Event midweek", client.created[1].Summary)

	assert.Equal(t, day(4, 19), client.created[1].Start)
	assert.Equal(t, day(4, 21), client.created[1].End)
	assert.Contains(t, client.created[1].Description, "Usher: Ben")
	assert.Contains(t, client.created[0].Description, "UNFILLED")
}

func TestPublishCalendar_NoCalendarConfigured(t *testing.T) {
	result, err := PublishCalendar(context.Background(), viewFixture(), &mockCalendarClient{}, testConfig(), zap.NewNop(), "")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no calendarID configured")
}

func TestPublishCalendar_ClientError(t *testing.T) {
	cfg := testConfig()
	cfg.CalendarID = "rota@example.com"
	client := &mockCalendarClient{createErr: errors.New("quota exceeded")}

	result, err := PublishCalendar(context.Background(), viewFixture(), client, cfg, zap.NewNop(), "")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestDescribeTeam_SortsLines(t *testing.T) {
	view, err := ViewSolution(context.Background(), viewFixture(), "org-1", "sol-1", zap.NewNop())
	require.NoError(t, err)

	description := describeTeam("sunday", view)
	assert.Equal(t, "Greeter: Ann\nUsher: Ben", description)
}
