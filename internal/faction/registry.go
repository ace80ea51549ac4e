// Faction registry — controllers register on creation so other systems can
// enumerate live factions.
package faction

import "github.com/talgya/vanguard/internal/world"

// Registry enumerates the live faction controllers of a match. It is injected
// wherever faction lookup is needed; there is no ambient global.
type Registry struct {
	controllers []*Controller
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// register adds a controller. Called from NewController.
func (r *Registry) register(c *Controller) {
	r.controllers = append(r.controllers, c)
}

// All returns every registered controller.
func (r *Registry) All() []*Controller { return r.controllers }

// ByID returns the controller for a faction, or nil.
func (r *Registry) ByID(id world.FactionID) *Controller {
	for _, c := range r.controllers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Tick advances every active controller by dt seconds, in registration order.
func (r *Registry) Tick(dt float64) {
	for _, c := range r.controllers {
		c.Tick(dt)
	}
}
