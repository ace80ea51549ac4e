// Resource kinds shared by the ledger, factory definitions, and intel.
package world

// Resource is a spendable resource kind.
type Resource string

const (
	Credits Resource = "credits"
	Energy  Resource = "energy"
	Nanites Resource = "nanites"
	Data    Resource = "data"
)

// Resources lists every resource kind, in display order.
func Resources() []Resource {
	return []Resource{Credits, Energy, Nanites, Data}
}

// Cost is the price of an entity in one or more resource kinds.
type Cost map[Resource]int
