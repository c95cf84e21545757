package engine

// PieceCount returns the number of pieces on the board, anchored included.
func (b *Board) PieceCount() int {
	count := 0
	for _, cell := range b.grid.cells {
		if cell.IsPiece() {
			count++
		}
	}
	return count
}

// Count returns the number of cells in the given state.
func (b *Board) Count(cell Cell) int {
	count := 0
	for _, c := range b.grid.cells {
		if c == cell {
			count++
		}
	}
	return count
}

// SideCount returns the number of pieces owned by side.
func (b *Board) SideCount(side Side) int {
	count := 0
	for _, c := range b.grid.cells {
		if s, ok := c.Side(); ok && s == side {
			count++
		}
	}
	return count
}

// Pieces returns the coordinates of every cell owned by side, row-major.
func (b *Board) Pieces(side Side) []Coord {
	var coords []Coord
	for i, c := range b.grid.cells {
		if s, ok := c.Side(); ok && s == side {
			coords = append(coords, Coord{Row: i / b.grid.width, Col: i % b.grid.width})
		}
	}
	return coords
}

// Mobility sums the number of relocation targets for every piece of side.
func (b *Board) Mobility(side Side) int {
	total := 0
	for _, c := range b.Pieces(side) {
		total += len(b.Reachable(c))
	}
	return total
}

// LegalPushes counts the legal pushes available to side.
func (b *Board) LegalPushes(side Side) int {
	total := 0
	for _, c := range b.Pieces(side) {
		total += len(b.PushDirections(c))
	}
	return total
}
