package models

import "fmt"

// HandlerKind distinguishes single handlers from middleware chains
type HandlerKind int

const (
	SingleHandler HandlerKind = iota
	ChainHandler
)

// String returns a readable name for the kind
func (k HandlerKind) String() string {
	switch k {
	case SingleHandler:
		return "single"
	case ChainHandler:
		return "chain"
	default:
		return "unknown"
	}
}

// HandlerEntry is the callable (or ordered callables) exported under a route name.
// Entries are referenced by name and index in generated code, never inlined.
type HandlerEntry struct {
	Name   string
	Kind   HandlerKind
	Length int // number of chain elements; 1 for single handlers
	Line   int
}

// Single returns an entry for a plain handler
func Single(name string) HandlerEntry {
	return HandlerEntry{Name: name, Kind: SingleHandler, Length: 1}
}

// Chain returns an entry for an ordered middleware chain ending in a handler.
// n must be at least one.
func Chain(name string, n int) HandlerEntry {
	if n < 1 {
		panic(fmt.Sprintf("models: chain %s must have at least one element", name))
	}
	return HandlerEntry{Name: name, Kind: ChainHandler, Length: n}
}

// IsChain reports whether the entry is an ordered collection
func (e HandlerEntry) IsChain() bool {
	return e.Kind == ChainHandler
}

// MiddlewareIndexes returns the chain positions that hold middleware, in order
func (e HandlerEntry) MiddlewareIndexes() []int {
	if !e.IsChain() || e.Length < 2 {
		return nil
	}
	indexes := make([]int, e.Length-1)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}

// TerminalIndex returns the position of the terminal handler, or -1 for single handlers
func (e HandlerEntry) TerminalIndex() int {
	if !e.IsChain() {
		return -1
	}
	return e.Length - 1
}

// ControllerModule is the set of handlers exported by one implementation package
type ControllerModule struct {
	ImportPath  string
	Dir         string
	PackageName string
	Entries     []HandlerEntry // source order
}

// Lookup returns the entry exported under name
func (c *ControllerModule) Lookup(name string) (HandlerEntry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return HandlerEntry{}, false
}

// Names returns the exported handler names in source order
func (c *ControllerModule) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}
