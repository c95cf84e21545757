package engine

import "fmt"

// Side identifies which player a piece belongs to.
type Side uint8

const (
	Light Side = iota
	Dark
)

func (s Side) String() string {
	switch s {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// Cell is the state of a single grid position. The numeric values match the
// codes a renderer reads from the flat cell slice.
type Cell uint8

const (
	LightPusher Cell = iota
	LightMover
	DarkPusher
	DarkMover
	Empty
	Void
	AnchoredLightPusher
	AnchoredDarkPusher
)

// Layout symbols
const (
	SymbolEmpty               = '.'
	SymbolVoid                = '#'
	SymbolLightPusher         = 'P'
	SymbolLightMover          = 'M'
	SymbolDarkPusher          = 'p'
	SymbolDarkMover           = 'm'
	SymbolAnchoredLightPusher = 'A'
	SymbolAnchoredDarkPusher  = 'a'
)

var cellSymbols = map[Cell]rune{
	Empty:               SymbolEmpty,
	Void:                SymbolVoid,
	LightPusher:         SymbolLightPusher,
	LightMover:          SymbolLightMover,
	DarkPusher:          SymbolDarkPusher,
	DarkMover:           SymbolDarkMover,
	AnchoredLightPusher: SymbolAnchoredLightPusher,
	AnchoredDarkPusher:  SymbolAnchoredDarkPusher,
}

var cellNames = map[Cell]string{
	Empty:               "empty",
	Void:                "void",
	LightPusher:         "light_pusher",
	LightMover:          "light_mover",
	DarkPusher:          "dark_pusher",
	DarkMover:           "dark_mover",
	AnchoredLightPusher: "anchored_light_pusher",
	AnchoredDarkPusher:  "anchored_dark_pusher",
}

// CellFromSymbol maps a layout symbol to its cell state.
func CellFromSymbol(r rune) (Cell, bool) {
	for c, s := range cellSymbols {
		if s == r {
			return c, true
		}
	}
	return Empty, false
}

// Symbol returns the single-character layout symbol for the cell.
func (c Cell) Symbol() rune {
	if s, ok := cellSymbols[c]; ok {
		return s
	}
	return '?'
}

func (c Cell) String() string {
	if n, ok := cellNames[c]; ok {
		return n
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// IsPiece reports whether the cell holds any piece, anchored or not.
func (c Cell) IsPiece() bool {
	return c != Empty && c != Void && c <= AnchoredDarkPusher
}

// IsPusher reports whether the cell holds an unanchored pusher.
func (c Cell) IsPusher() bool {
	return c == LightPusher || c == DarkPusher
}

func (c Cell) IsMover() bool {
	return c == LightMover || c == DarkMover
}

func (c Cell) IsAnchored() bool {
	return c == AnchoredLightPusher || c == AnchoredDarkPusher
}

// IsOpen reports whether a push chain terminates on this cell.
func (c Cell) IsOpen() bool {
	return c == Empty || c == Void
}

// Side returns the owner of the piece. ok is false for empty and void cells.
func (c Cell) Side() (side Side, ok bool) {
	switch c {
	case LightPusher, LightMover, AnchoredLightPusher:
		return Light, true
	case DarkPusher, DarkMover, AnchoredDarkPusher:
		return Dark, true
	}
	return Light, false
}

// Anchored returns the anchored form of a pusher. ok is false for any other cell.
func (c Cell) Anchored() (Cell, bool) {
	switch c {
	case LightPusher:
		return AnchoredLightPusher, true
	case DarkPusher:
		return AnchoredDarkPusher, true
	}
	return c, false
}

// Coord is a (row, column) pair. Validity depends on the board it is used with.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the coordinate one step along d.
func (c Coord) Add(d Direction) Coord {
	return Coord{Row: c.Row + d.DR, Col: c.Col + d.DC}
}

// Sub returns the offset from o to c.
func (c Coord) Sub(o Coord) Direction {
	return Direction{DR: c.Row - o.Row, DC: c.Col - o.Col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is a row/column delta.
type Direction struct {
	DR int `json:"dr"`
	DC int `json:"dc"`
}

var (
	Up    = Direction{DR: -1, DC: 0}
	Down  = Direction{DR: 1, DC: 0}
	Left  = Direction{DR: 0, DC: -1}
	Right = Direction{DR: 0, DC: 1}

	// Directions lists the four orthogonal unit steps.
	Directions = []Direction{Up, Left, Down, Right}
)

// IsUnit reports whether d is exactly one orthogonal step.
func (d Direction) IsUnit() bool {
	return abs(d.DR)+abs(d.DC) == 1
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.DR, d.DC)
}

// MoveKind is the dispatcher's classification of a proposed move.
type MoveKind int

const (
	MoveIllegal MoveKind = iota
	MoveRelocate
	MovePush
)

func (k MoveKind) String() string {
	switch k {
	case MoveRelocate:
		return "relocate"
	case MovePush:
		return "push"
	}
	return "illegal"
}

// MarshalText lets MoveKind appear by name in JSON.
func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
