// Package parser provides parsing functionality for MARlea reaction
// network files.
//
// A network file is line oriented. Each line holds at most one record:
//   - a reaction: "2 A + B => C, 5" (reactants => products, rate)
//   - an initial species count: "A, 100"
//
// NULL stands for an empty reactant or product list. Comments start with
// "//" and run to the end of the line. Blank lines, stray commas and extra
// spaces are ignored.
//
// Parsing is fail fast: the first mismatch aborts with a *ParseError that
// can be matched with errors.Is against the Err* sentinels.
package parser
