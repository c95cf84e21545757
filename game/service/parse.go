package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/pushfight/game/engine"
)

// ParseMove reads a move written either as "r1,c1:r2,c2" or as four
// whitespace-separated integers "r1 c1 r2 c2".
func ParseMove(s string) (MoveRequest, error) {
	s = strings.TrimSpace(s)
	if from, to, ok := strings.Cut(s, ":"); ok {
		start, err := ParseCoord(from)
		if err != nil {
			return MoveRequest{}, fmt.Errorf("move %q: %w", s, err)
		}
		end, err := ParseCoord(to)
		if err != nil {
			return MoveRequest{}, fmt.Errorf("move %q: %w", s, err)
		}
		return MoveRequest{From: start, To: end}, nil
	}

	fields := strings.Fields(s)
	if len(fields) != 4 {
		return MoveRequest{}, fmt.Errorf("move %q: expected \"r1,c1:r2,c2\" or four numbers", s)
	}
	n := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return MoveRequest{}, fmt.Errorf("move %q: %q is not a number", s, f)
		}
		n[i] = v
	}
	return MoveRequest{
		From: engine.Coord{Row: n[0], Col: n[1]},
		To:   engine.Coord{Row: n[2], Col: n[3]},
	}, nil
}

// ParseCoord reads a "row,col" pair.
func ParseCoord(s string) (engine.Coord, error) {
	r, c, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return engine.Coord{}, fmt.Errorf("coordinate %q must be \"row,col\"", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return engine.Coord{}, fmt.Errorf("coordinate %q: bad row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return engine.Coord{}, fmt.Errorf("coordinate %q: bad column", s)
	}
	return engine.Coord{Row: row, Col: col}, nil
}
