package solver

import (
	"time"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// at builds a timestamp on the given March 2026 day at the given hour
func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func person(id string, capabilities ...model.Role) model.Person {
	return model.Person{
		ID:             id,
		Name:           id,
		OrganizationID: "org-1",
		Capabilities:   capabilities,
	}
}

func event(id string, start, end time.Time, reqs ...model.RoleRequirement) model.Event {
	return model.Event{
		ID:             id,
		OrganizationID: "org-1",
		Name:           id,
		Start:          start,
		End:            end,
		Requirements:   reqs,
	}
}

func req(role model.Role, count int) model.RoleRequirement {
	return model.RoleRequirement{Role: role, Count: count}
}

func snapshot(people []model.Person, events []model.Event) Snapshot {
	return Snapshot{
		OrganizationID: "org-1",
		People:         people,
		Events:         events,
	}
}
