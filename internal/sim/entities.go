// Package sim supplies in-process implementations of the capabilities the
// faction controller consumes — simulated units, buildings, an entity
// factory, and a flat world — so headless matches and tests run without a
// game engine.
package sim

import (
	"github.com/google/uuid"

	"github.com/talgya/vanguard/internal/world"
)

// arrivalEpsilon is how close a unit must get before it counts as arrived.
const arrivalEpsilon = 0.5

// Unit is a simulated mobile entity.
type Unit struct {
	id      string
	faction world.FactionID
	typeID  string

	pos    world.Vec3
	dest   world.Vec3
	moving bool

	health    float64
	maxHealth float64
	damage    float64
	speed     float64
}

func (u *Unit) ID() string               { return u.id }
func (u *Unit) Faction() world.FactionID { return u.faction }
func (u *Unit) Position() world.Vec3     { return u.pos }
func (u *Unit) TypeID() string           { return u.typeID }
func (u *Unit) Health() float64          { return u.health }
func (u *Unit) MaxHealth() float64       { return u.maxHealth }
func (u *Unit) Damage() float64          { return u.damage }
func (u *Unit) Alive() bool              { return u.health > 0 }
func (u *Unit) IsMoving() bool           { return u.moving }

// MoveTo orders immediate movement toward a destination.
func (u *Unit) MoveTo(pos world.Vec3) {
	u.dest = pos
	u.moving = true
}

// SetDestination queues a destination without starting movement.
func (u *Unit) SetDestination(pos world.Vec3) { u.dest = pos }

// step advances movement by dt seconds.
func (u *Unit) step(dt float64) {
	if !u.moving {
		return
	}
	delta := u.dest.Sub(u.pos)
	dist := u.pos.Dist(u.dest)
	if dist <= arrivalEpsilon {
		u.moving = false
		return
	}
	travel := u.speed * dt
	if travel >= dist {
		u.pos = u.dest
		u.moving = false
		return
	}
	scale := travel / dist
	u.pos = u.pos.Add(world.Vec3{X: delta.X * scale, Y: delta.Y * scale, Z: delta.Z * scale})
}

// Building is a simulated structure. Buildings upgrade in place.
type Building struct {
	id      string
	faction world.FactionID
	typeID  string
	pos     world.Vec3

	health float64
	level  int
}

func (b *Building) ID() string               { return b.id }
func (b *Building) Faction() world.FactionID { return b.faction }
func (b *Building) Position() world.Vec3     { return b.pos }
func (b *Building) TypeID() string           { return b.typeID }
func (b *Building) Alive() bool              { return b.health > 0 }
func (b *Building) Level() int               { return b.level }

// Upgrade bumps the building level. Capped at 3.
func (b *Building) Upgrade() bool {
	if b.level >= 3 {
		return false
	}
	b.level++
	return true
}

func newID() string { return uuid.NewString() }
