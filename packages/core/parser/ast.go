package parser

type Document struct {
	Path    string
	Records []*Record
}

type Record struct {
	Kind     RecordKind
	Line     int
	Reaction *Reaction
	Species  *SpeciesCount
}

type RecordKind int

const (
	RecordReaction RecordKind = iota
	RecordSpeciesCount
)

func (k RecordKind) String() string {
	switch k {
	case RecordReaction:
		return "reaction"
	case RecordSpeciesCount:
		return "species"
	default:
		return "unknown"
	}
}

type Term struct {
	Coefficient uint64
	Name        string
}

// Reaction is a single rule of the network. Empty Reactants or Products
// describe a source or sink reaction.
type Reaction struct {
	Reactants []Term
	Products  []Term
	Rate      uint64
}

type SpeciesCount struct {
	Name  string
	Count uint64
}

// Reactions returns the reaction records in source order.
func (d *Document) Reactions() []*Reaction {
	var out []*Reaction
	for _, r := range d.Records {
		if r.Kind == RecordReaction {
			out = append(out, r.Reaction)
		}
	}
	return out
}

// SpeciesCounts returns the initial count records in source order.
func (d *Document) SpeciesCounts() []*SpeciesCount {
	var out []*SpeciesCount
	for _, r := range d.Records {
		if r.Kind == RecordSpeciesCount {
			out = append(out, r.Species)
		}
	}
	return out
}

// Species returns every species name mentioned in the document, in the
// order it first appears. Nothing is merged in the records themselves.
func (d *Document) Species() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, r := range d.Records {
		switch r.Kind {
		case RecordReaction:
			for _, t := range r.Reaction.Reactants {
				add(t.Name)
			}
			for _, t := range r.Reaction.Products {
				add(t.Name)
			}
		case RecordSpeciesCount:
			add(r.Species.Name)
		}
	}
	return names
}
