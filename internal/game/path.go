package game

// maxHopsFactor bounds a walk to 4*width hops so a malformed graph fails
// instead of looping forever.
const maxHopsFactor = 4

// Destination walks the graph the given number of steps from the piece's
// current cell. At the decision cell it detours into enemy territory
// unless the piece has already completed its one permitted visit, in
// which case it stays on the loop. Returns false when the walk cannot be
// completed.
func (g *Graph) Destination(p Piece, steps int) (Cell, bool) {
	if steps <= 0 || steps > maxHopsFactor*g.width {
		return Cell{}, false
	}
	cur := Cell{Row: p.Row, Col: p.Col}
	for i := 0; i < steps; i++ {
		e, ok := g.edges[cur]
		if !ok {
			return Cell{}, false
		}
		if e.branch && !p.HasCompletedEnemyTerritory {
			cur = e.territory
			continue
		}
		cur = e.next
	}
	return cur, true
}
