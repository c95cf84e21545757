package engine

import (
	"fmt"
	"sort"
)

// CanMove reports whether the piece at start can relocate to end by sliding
// through orthogonally connected Empty cells. The board is not modified.
func (b *Board) CanMove(start, end Coord) bool {
	if d := b.checkMove(start, end); d != nil {
		b.sink.Record(*d)
		return false
	}
	return true
}

// checkMove returns nil when the relocation is legal, otherwise the reason it
// is not.
func (b *Board) checkMove(start, end Coord) *Diagnostic {
	if start == end {
		return reject(ReasonSameCell, start, end, "start and end are the same cell")
	}
	if !b.grid.InBounds(start) {
		return reject(ReasonOutOfBounds, start, end, fmt.Sprintf("start %s not in bounds", start))
	}
	if !b.grid.InBounds(end) {
		return reject(ReasonOutOfBounds, start, end, fmt.Sprintf("end %s not in bounds", end))
	}
	if piece, _ := b.grid.At(start); !piece.IsPiece() {
		return reject(ReasonNoPiece, start, end, fmt.Sprintf("nothing to move at %s (%s)", start, piece))
	} else if piece.IsAnchored() {
		return reject(ReasonAnchored, start, end, fmt.Sprintf("%s at %s is anchored", piece, start))
	}

	toExplore := []Coord{start}
	explored := map[Coord]bool{start: true}
	for len(toExplore) > 0 {
		cur := toExplore[len(toExplore)-1]
		toExplore = toExplore[:len(toExplore)-1]
		if cur == end {
			return nil
		}
		for _, d := range Directions {
			next := cur.Add(d)
			if explored[next] || !b.isEmpty(next) {
				continue
			}
			explored[next] = true
			toExplore = append(toExplore, next)
		}
	}

	return reject(ReasonNoPath, start, end, fmt.Sprintf("no open path from %s to %s", start, end))
}

// Reachable lists every cell the piece at start could relocate to, in
// row-major order. It returns nil when start holds no movable piece.
func (b *Board) Reachable(start Coord) []Coord {
	if piece, ok := b.grid.At(start); !ok || !piece.IsPiece() || piece.IsAnchored() {
		return nil
	}

	var found []Coord
	toExplore := []Coord{start}
	explored := map[Coord]bool{start: true}
	for len(toExplore) > 0 {
		cur := toExplore[len(toExplore)-1]
		toExplore = toExplore[:len(toExplore)-1]
		for _, d := range Directions {
			next := cur.Add(d)
			if explored[next] || !b.isEmpty(next) {
				continue
			}
			explored[next] = true
			found = append(found, next)
			toExplore = append(toExplore, next)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Row != found[j].Row {
			return found[i].Row < found[j].Row
		}
		return found[i].Col < found[j].Col
	})
	return found
}

func (b *Board) isEmpty(c Coord) bool {
	cell, ok := b.grid.At(c)
	return ok && cell == Empty
}

// relocate teleports the piece at start to end. The path only proves legality.
func (b *Board) relocate(start, end Coord) {
	piece, _ := b.grid.At(start)
	next := b.grid.Clone()
	next.set(end, piece)
	next.set(start, Empty)
	b.grid = next
	b.report(ReasonRelocated, start, end, fmt.Sprintf("moving %s %s -> %s", piece, start, end))
}

func reject(reason Reason, from, to Coord, msg string) *Diagnostic {
	return &Diagnostic{Reason: reason, Message: msg, From: from, To: to}
}
