package engine

import "fmt"

// Board is a grid governed by the push rules. A Board is not safe for
// concurrent use; hosts must serialize calls into a single instance.
type Board struct {
	grid *Grid
	name string
	sink Sink
}

// Option configures a Board at construction.
type Option func(*Board)

// WithSink sets the diagnostic sink. The default discards everything.
func WithSink(sink Sink) Option {
	return func(b *Board) {
		if sink != nil {
			b.sink = sink
		}
	}
}

// NewGame creates a board with the reference layout.
func NewGame(opts ...Option) *Board {
	b, err := NewBoard(ReferenceLayout(), opts...)
	if err != nil {
		panic(fmt.Sprintf("engine: reference layout is invalid: %v", err))
	}
	return b
}

// NewBoard creates a board from the provided layout.
func NewBoard(layout *Layout, opts ...Option) (*Board, error) {
	grid, err := ParseLayout(layout)
	if err != nil {
		return nil, err
	}

	b := &Board{
		grid: grid,
		name: layout.Name,
		sink: NopSink{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// SetSink replaces the diagnostic sink. A nil sink discards diagnostics.
func (b *Board) SetSink(sink Sink) {
	if sink == nil {
		sink = NopSink{}
	}
	b.sink = sink
}

// Sink returns the current diagnostic sink.
func (b *Board) Sink() Sink {
	return b.sink
}

// Name returns the name of the layout the board was built from.
func (b *Board) Name() string { return b.name }

func (b *Board) Width() int  { return b.grid.Width() }
func (b *Board) Height() int { return b.grid.Height() }

// Cells returns a copy of the row-major cell sequence.
func (b *Board) Cells() []Cell {
	return b.grid.Cells()
}

// At returns the cell at (row, col). ok is false when the coordinate is off
// the board.
func (b *Board) At(row, col int) (Cell, bool) {
	return b.grid.At(Coord{Row: row, Col: col})
}

// Rows renders the board as symbol rows.
func (b *Board) Rows() []string {
	return b.grid.Rows()
}

// Classify decides what a move from start to end would do without applying it
// or reporting diagnostics.
func (b *Board) Classify(start, end Coord) MoveKind {
	if b.checkMove(start, end) == nil {
		return MoveRelocate
	}
	if b.checkPush(start, end.Sub(start)) == nil {
		return MovePush
	}
	return MoveIllegal
}

// Apply performs the move from start to end and reports what was done.
// A relocation is tried first, then a push along end-start. Anything else
// leaves the board unchanged.
// Rejections are reported only when the move is illegal.
func (b *Board) Apply(start, end Coord) MoveKind {
	moveErr := b.checkMove(start, end)
	if moveErr == nil {
		b.relocate(start, end)
		return MoveRelocate
	}

	dir := end.Sub(start)
	pushErr := b.checkPush(start, dir)
	if pushErr == nil {
		b.executePush(start, dir)
		return MovePush
	}

	b.sink.Record(*moveErr)
	b.sink.Record(*pushErr)
	b.report(ReasonRejected, start, end, fmt.Sprintf("move %s -> %s ignored", start, end))
	return MoveIllegal
}

// TryMove attempts the move from (startRow, startCol) to (endRow, endCol).
// The outcome is visible only through the board state and the sink.
func (b *Board) TryMove(startRow, startCol, endRow, endCol int) {
	b.Apply(Coord{Row: startRow, Col: startCol}, Coord{Row: endRow, Col: endCol})
}

// Snapshot is a serializable view of a board. Cells holds the numeric cell
// codes in row-major order.
type Snapshot struct {
	Name       string   `json:"name"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Cells      []int    `json:"cells"`
	Rows       []string `json:"rows"`
	PieceCount int      `json:"piece_count"`
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() *Snapshot {
	codes := make([]int, len(b.grid.cells))
	for i, c := range b.grid.cells {
		codes[i] = int(c)
	}
	return &Snapshot{
		Name:       b.name,
		Width:      b.grid.Width(),
		Height:     b.grid.Height(),
		Cells:      codes,
		Rows:       b.grid.Rows(),
		PieceCount: b.PieceCount(),
	}
}

func (b *Board) report(reason Reason, from, to Coord, msg string) {
	b.sink.Record(Diagnostic{Reason: reason, Message: msg, From: from, To: to})
}
