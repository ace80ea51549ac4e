// Faction lifecycle notifications — an observer list any collaborator may
// subscribe to, plus a bounded recent-event log for reporting.
package faction

import "github.com/talgya/vanguard/internal/world"

// EventType classifies a faction notification.
type EventType string

const (
	EventBaseEstablished EventType = "base_established"
	EventResourceChanged EventType = "resource_changed"
	EventUnitCreated     EventType = "unit_created"
	EventBuildingCreated EventType = "building_created"
	EventUnderAttack     EventType = "under_attack"
	EventResearchDone    EventType = "research_done"
	EventAttackLaunched  EventType = "attack_launched"
)

// Event is a notable faction occurrence.
type Event struct {
	Type     EventType       `json:"type"`
	Faction  world.FactionID `json:"faction"`
	Time     float64         `json:"time"` // sim-time seconds
	Detail   string          `json:"detail"`
	Position world.Vec3      `json:"position"`
}

// Listener receives faction events. Delivery is synchronous, within the tick
// that produced the event.
type Listener func(Event)

// maxRecentEvents bounds the in-memory event log.
const maxRecentEvents = 256

// Subscribe registers a listener for this faction's events.
func (c *Controller) Subscribe(fn Listener) {
	c.listeners = append(c.listeners, fn)
}

// RecentEvents returns the retained event log, oldest first.
func (c *Controller) RecentEvents() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Controller) emit(t EventType, detail string, pos world.Vec3) {
	ev := Event{Type: t, Faction: c.ID, Time: c.clock, Detail: detail, Position: pos}
	c.events = append(c.events, ev)
	if len(c.events) > maxRecentEvents {
		c.events = c.events[len(c.events)-maxRecentEvents:]
	}
	for _, fn := range c.listeners {
		fn(ev)
	}
}
