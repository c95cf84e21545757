package engine

import "fmt"

// CanPush reports whether the pusher at origin can push the line of pieces
// ahead of it one step along dir.
func (b *Board) CanPush(origin Coord, dir Direction) bool {
	if d := b.checkPush(origin, dir); d != nil {
		b.sink.Record(*d)
		return false
	}
	return true
}

// checkPush returns nil when the push is legal, otherwise the reason it is not.
// The chain must hold at least one piece and must end on an Empty or Void cell
// inside the board; an anchored pusher anywhere in the chain blocks it.
func (b *Board) checkPush(origin Coord, dir Direction) *Diagnostic {
	target := origin.Add(dir)
	if !b.grid.InBounds(origin) {
		return reject(ReasonOutOfBounds, origin, target, fmt.Sprintf("%s not in bounds for push", origin))
	}
	if !dir.IsUnit() {
		return reject(ReasonBadDirection, origin, target, fmt.Sprintf("invalid push direction %s", dir))
	}
	if piece, _ := b.grid.At(origin); !piece.IsPusher() {
		return reject(ReasonNotPusher, origin, target, fmt.Sprintf("must push with a pusher, not %s", piece))
	}

	for cur := target; b.grid.InBounds(cur); cur = cur.Add(dir) {
		cell, _ := b.grid.At(cur)
		switch {
		case cell.IsAnchored():
			return reject(ReasonAnchored, origin, target, fmt.Sprintf("can't push through anchor at %s", cur))
		case cell.IsOpen():
			if cur == target {
				return reject(ReasonNothingToPush, origin, target, fmt.Sprintf("no piece to push at %s", target))
			}
			return nil
		}
	}

	return reject(ReasonOffBoard, origin, target, "push ended out of bounds")
}

// PushDirections lists the directions in which the piece at origin can
// legally push. It returns nil for anything but an unanchored pusher.
func (b *Board) PushDirections(origin Coord) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if b.checkPush(origin, d) == nil {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// executePush shifts the chain starting at origin one step along dir and
// anchors the pusher in the cell next to origin. The caller has already
// validated the push. The new grid replaces the old one in a single step.
func (b *Board) executePush(origin Coord, dir Direction) {
	pusher, _ := b.grid.At(origin)
	anchored, _ := pusher.Anchored()

	next := b.grid.Clone()
	carried := Empty
	for cur := origin; b.grid.InBounds(cur); cur = cur.Add(dir) {
		old, _ := b.grid.At(cur)
		if old == Empty {
			next.set(cur, carried)
			break
		}
		if old == Void {
			b.report(ReasonPieceLost, origin, cur, fmt.Sprintf("%s pushed into void at %s", carried, cur))
			break
		}
		next.set(cur, carried)
		carried = old
	}
	next.set(origin.Add(dir), anchored)

	b.grid = next
	b.report(ReasonPushed, origin, origin.Add(dir), fmt.Sprintf("push from %s %s", origin, dir))
}
