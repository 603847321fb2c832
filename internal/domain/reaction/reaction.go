package reaction

// Reaction publishes two behaviors: a priority bucket (smaller runs first)
// and a pure function of the immutable Context that proposes products.
// Implementations must not mutate anything reachable through ctx.
type Reaction interface {
	Priority() uint8
	React(ctx Context) []Product
}

// Group holds every reaction registered at one priority, in insertion
// order. Within a group every reaction observes the same pending set; their
// outputs are fused together before the next group runs.
type Group struct {
	Priority  uint8
	Reactions []Reaction
}

func (g *Group) push(r Reaction) {
	g.Reactions = append(g.Reactions, r)
}

// Lookup stores reactions grouped by equal priority, iterated in ascending
// priority order. Groups live in a slice kept sorted on each insert;
// insertion happens at flask construction or between steps, never on the
// step path.
type Lookup struct {
	groups []*Group
}

// NewLookup returns an empty Lookup.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Insert adds a reaction to the group matching its priority, creating the
// group if necessary and re-sorting groups ascending by priority.
func (l *Lookup) Insert(r Reaction) {
	for _, group := range l.groups {
		if group.Priority == r.Priority() {
			group.push(r)
			return
		}
	}

	l.groups = append(l.groups, &Group{Priority: r.Priority(), Reactions: []Reaction{r}})
	sortGroupsByPriority(l.groups)
}

// Groups returns every priority group in ascending priority order.
func (l *Lookup) Groups() []*Group {
	return l.groups
}

func sortGroupsByPriority(groups []*Group) {
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j-1].Priority > groups[j].Priority; j-- {
			groups[j-1], groups[j] = groups[j], groups[j-1]
		}
	}
}
