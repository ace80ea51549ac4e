// Capability interfaces the faction controller depends on. The real game
// engine supplies these; internal/sim supplies in-process implementations for
// headless matches and tests.
package world

// FactionID identifies one independently-controlled side of the match.
type FactionID uint64

// Unit is a live mobile entity: its identity, allegiance, combat stats, and
// movement capability.
type Unit interface {
	ID() string
	Faction() FactionID
	Position() Vec3
	TypeID() string

	// Combat stats, used for strength estimation (health × damage proxy).
	Health() float64
	MaxHealth() float64
	Damage() float64
	Alive() bool

	// Movement. SetDestination queues a destination; MoveTo orders immediate
	// movement toward it. IsMoving reports whether the unit has not yet
	// arrived.
	MoveTo(pos Vec3)
	SetDestination(pos Vec3)
	IsMoving() bool
}

// Building is a placed structure.
type Building interface {
	ID() string
	Faction() FactionID
	Position() Vec3
	TypeID() string
	Alive() bool
}

// Definition describes what an entity identifier costs and occupies.
type Definition struct {
	ID        string
	Cost      Cost
	Footprint float64 // placement radius
	IsUnit    bool
	Requires  string // building type that must exist before production
}

// Factory instantiates entities from string identifiers.
type Factory interface {
	DefinitionFor(id string) (Definition, bool)
	// CreateUnit / CreateBuilding return nil when the identifier is unknown
	// or instantiation fails. Failure is reported, never raised.
	CreateUnit(id string, pos Vec3, owner FactionID) Unit
	CreateBuilding(id string, pos Vec3, owner FactionID) Building
}

// Placement validates building positions against terrain and overlap rules.
type Placement interface {
	CanPlace(buildingID string, pos Vec3) bool
}

// Upgradable is implemented by buildings that support in-place upgrades.
type Upgradable interface {
	Upgrade() bool
}

// Query enumerates the live entities of the match.
type Query interface {
	AllUnits() []Unit
	AllBuildings() []Building
}

// Terrain answers ground height lookups so placements sit on the surface.
type Terrain interface {
	GroundHeightAt(x, z float64) float64
}

// ResourceNode is a harvestable deposit discovered by scouting.
type ResourceNode struct {
	Position  Vec3
	Kind      Resource
	Amount    int
	Harvested bool
}

// NodeQuery enumerates harvestable resource nodes.
type NodeQuery interface {
	AllResourceNodes() []ResourceNode
}
