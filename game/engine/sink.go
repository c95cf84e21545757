package engine

// Reason classifies a diagnostic emitted by the rules engine.
type Reason string

const (
	// Rejections
	ReasonSameCell      Reason = "same_cell"
	ReasonOutOfBounds   Reason = "out_of_bounds"
	ReasonNoPiece       Reason = "no_piece"
	ReasonNoPath        Reason = "no_path"
	ReasonBadDirection  Reason = "bad_direction"
	ReasonNotPusher     Reason = "not_pusher"
	ReasonAnchored      Reason = "blocked_by_anchor"
	ReasonNothingToPush Reason = "nothing_to_push"
	ReasonOffBoard      Reason = "off_board"
	ReasonRejected      Reason = "rejected"

	// Notable events
	ReasonRelocated Reason = "relocated"
	ReasonPushed    Reason = "pushed"
	ReasonPieceLost Reason = "piece_lost"
)

// IsRejection reports whether the reason describes a refused decision.
func (r Reason) IsRejection() bool {
	switch r {
	case ReasonRelocated, ReasonPushed, ReasonPieceLost:
		return false
	}
	return true
}

// Diagnostic is a single observation reported to a Sink. It carries no game
// semantics.
type Diagnostic struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
	From    Coord  `json:"from"`
	To      Coord  `json:"to"`
}

// Sink receives diagnostics from a Board.
type Sink interface {
	Record(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Record(d Diagnostic) { f(d) }

// NopSink discards all diagnostics.
type NopSink struct{}

func (NopSink) Record(Diagnostic) {}
