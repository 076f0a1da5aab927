package container

// dependencyChain records the aliases in flight during one top-level
// resolution. Entries accumulate for the whole call (nested steps
// append, nothing pops), so a duplicate append anywhere in the call is
// the circular-dependency signal. The engine clears it with deferred
// calls at both top-level entry points, so a failed resolution cannot
// leak chain state into the next call.
type dependencyChain struct {
	entries []string
	seen    map[string]struct{}
}

func newDependencyChain() *dependencyChain {
	return &dependencyChain{seen: make(map[string]struct{})}
}

// append adds the alias, failing with CircularDependencyError if it is
// already on the chain. The error carries the path up to, but not
// including, the offending alias.
func (ch *dependencyChain) append(alias string) error {
	if _, dup := ch.seen[alias]; dup {
		return CircularDependencyError{Alias: alias, Chain: ch.path()}
	}
	ch.entries = append(ch.entries, alias)
	ch.seen[alias] = struct{}{}
	return nil
}

// clear empties the chain for the next top-level call.
func (ch *dependencyChain) clear() {
	ch.entries = ch.entries[:0]
	clear(ch.seen)
}

// path returns a copy of the current entries.
func (ch *dependencyChain) path() []string {
	out := make([]string, len(ch.entries))
	copy(out, ch.entries)
	return out
}
