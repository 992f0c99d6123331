// Package callsign maps the radio callsigns pilots type into logbooks onto
// canonical aircraft identifiers.
package callsign

import "strings"

// defaultAliases are the club's known callsign variants.
var defaultAliases = map[string]string{
	"GBODU": "G-BODU",
	"DU":    "G-BODU",
	"SB":    "TUG SB",
	"GC":    "TUG GC",
	"GELSB": "TUG SB",
	"GOCGC": "TUG GC",
}

// DefaultAliases returns a copy of the built-in alias table.
func DefaultAliases() map[string]string {
	out := make(map[string]string, len(defaultAliases))
	for k, v := range defaultAliases {
		out[k] = v
	}
	return out
}

// Merge returns a new table holding base overlaid with extra.
func Merge(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Resolver is a read-only alias lookup. It is safe for concurrent use.
type Resolver struct {
	aliases map[string]string
}

// NewResolver copies aliases into a resolver. Keys and values are uppercased
// and chains such as K21 -> DU -> G-BODU are collapsed to their final value,
// so resolving a result again returns it unchanged. Members of a cycle
// resolve to themselves.
func NewResolver(aliases map[string]string) *Resolver {
	table := make(map[string]string, len(aliases))
	for k, v := range aliases {
		table[normalize(k)] = normalize(v)
	}

	resolved := make(map[string]string, len(table))
	for k := range table {
		resolved[k] = follow(table, k)
	}
	return &Resolver{aliases: resolved}
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// follow walks the alias chain starting at key until it reaches a value that
// is not itself an alias, or revisits one.
func follow(table map[string]string, key string) string {
	seen := map[string]bool{key: true}
	v := table[key]
	for {
		next, ok := table[v]
		if !ok || next == v || seen[v] {
			return v
		}
		seen[v] = true
		v = next
	}
}

// NewDefaultResolver returns a resolver over the built-in table.
func NewDefaultResolver() *Resolver {
	return NewResolver(defaultAliases)
}

// Resolve returns the canonical identifier for raw. Unknown callsigns come
// back uppercased.
func (r *Resolver) Resolve(raw string) string {
	key := normalize(raw)
	if canonical, ok := r.aliases[key]; ok {
		return canonical
	}
	return key
}

// Len returns the number of aliases.
func (r *Resolver) Len() int {
	return len(r.aliases)
}
