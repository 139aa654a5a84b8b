package entity

// Player is one seat in a game. The seat index is assigned in join
// order and stays stable for the lifetime of the game; the symbol is
// unique within it. ConnID is the opaque handle of the underlying
// connection, used for log correlation only.
type Player struct {
	Seat   int    `json:"seat"`
	Symbol string `json:"symbol"`
	ConnID string `json:"conn_id,omitempty"`
}
