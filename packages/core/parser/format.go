package parser

import (
	"strconv"
	"strings"
)

// Format renders doc in canonical form: one record per line, explicit
// coefficients, single separators and no comments. Parsing the result
// yields the same records.
func Format(doc *Document) string {
	var b strings.Builder
	for _, r := range doc.Records {
		switch r.Kind {
		case RecordReaction:
			b.WriteString(r.Reaction.String())
		case RecordSpeciesCount:
			b.WriteString(r.Species.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (t Term) String() string {
	return strconv.FormatUint(t.Coefficient, 10) + " " + t.Name
}

func (r *Reaction) String() string {
	return formatList(r.Reactants) + " => " + formatList(r.Products) + ", " + strconv.FormatUint(r.Rate, 10)
}

func (s *SpeciesCount) String() string {
	return s.Name + ", " + strconv.FormatUint(s.Count, 10)
}

func formatList(terms []Term) string {
	if len(terms) == 0 {
		return nullKeyword
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}
