package planner

// Move relocates the step at position from to position to, both 0-based
// indices into the product's group in its current order. Moves are only
// valid within one group; after a successful move the group's sequence
// values are renumbered to a contiguous 1..N. Every other group is left
// untouched.
//
// No-ops (returning false): unknown group, equal positions, either position
// out of range.
func (c *Composition) Move(productID uint, from, to int) bool {
	g := c.groups[productID]
	if g == nil {
		return false
	}
	n := len(g.Steps)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}

	step := g.Steps[from]
	rest := append(g.Steps[:from:from], g.Steps[from+1:]...)

	g.Steps = append(rest[:to:to], append([]*Step{step}, rest[to:]...)...)

	for i, s := range g.Steps {
		s.Sequence = i + 1
	}
	return true
}
