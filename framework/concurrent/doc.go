// Package concurrent runs independent work in parallel.
//
// Map evaluates accessibility rules over one parsed page and keeps their
// order:
//
//	results, err := concurrent.Map(rules, func(r Rule) ([]Violation, error) {
//	    return r.Check(doc), nil
//	})
//
// ForEachWithContext quits leftover browser sessions at the end of a run,
// one goroutine per session. A single Session is never used from two
// goroutines.
package concurrent
