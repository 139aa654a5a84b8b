package game

import (
	"fmt"
	"sync"

	"github.com/gridlabsinc/gridtactoe-backend/internal/apperror"
	"github.com/gridlabsinc/gridtactoe-backend/internal/entity"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	// MinPlayers is the roster size at which a waiting game starts.
	MinPlayers = 2
)

// Conn is the send side of a participant's connection. The session
// never reads from it; each handler reads its own connection.
type Conn interface {
	Send(msg string) error
}

// seat pairs a player with its connection and the last payload that was
// delivered to it. Keeping the payload cache on the seat, under the
// session lock, means a state change reaches each recipient exactly
// once no matter which handler broadcasts first. Writes themselves
// happen outside the session lock, serialized per seat by sendMu;
// seq orders them so a stale payload is dropped rather than delivered
// after a newer one.
type seat struct {
	player      entity.Player
	conn        Conn
	lastPayload string
	seq         uint64

	sendMu  sync.Mutex
	sentSeq uint64
}

// deliver writes one payload unless a later one already went out.
func (that *seat) deliver(payload string, seq uint64) {
	that.sendMu.Lock()
	defer that.sendMu.Unlock()

	if seq <= that.sentSeq {
		return
	}
	that.sentSeq = seq

	_ = that.conn.Send(payload)
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// State is a consistent snapshot of a session, safe to read without
// holding the session lock.
type State struct {
	ID       int
	Board    [][]string
	Size     int
	Players  []entity.Player
	Turn     int
	Status   string
	Active   bool
	Outcome  entity.Outcome
	LastMove *Move
}

// Session is one running game: a board, an ordered roster, and the turn
// state, all guarded as a single unit by one exclusive lock. Handlers
// belonging to the session block on Watch channels instead of polling;
// every state-changing operation signals them.
type Session struct {
	ID int

	mu          sync.Mutex
	board       *entity.Board
	seats       []*seat
	turn        int
	status      string
	active      bool
	outcome     entity.Outcome
	lastMove    *Move
	watchers    map[int]chan struct{}
	nextWatcher int
}

func NewSession(id int) *Session {
	return &Session{
		ID:       id,
		board:    entity.NewBoard(entity.MinBoardSize),
		status:   StatusWaiting,
		active:   true,
		watchers: make(map[int]chan struct{}),
	}
}

// Admit appends a new player at the next seat index with the next
// unused symbol, growing the board to 2*(players+1) before the player
// can ever be offered a turn. Starting at MinPlayers the game begins;
// later players may still join while symbols remain.
func (that *Session) Admit(connID string, conn Conn) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.active {
		return entity.Player{}, apperror.ErrGameInactive
	}

	if that.status == StatusFinished {
		return entity.Player{}, apperror.ErrGameFinished
	}

	if len(that.seats) >= len(entity.Symbols) {
		return entity.Player{}, apperror.ErrGameFull
	}

	player := entity.Player{
		Seat:   len(that.seats),
		Symbol: entity.Symbols[len(that.seats)],
		ConnID: connID,
	}
	that.seats = append(that.seats, &seat{player: player, conn: conn})

	that.board.Grow(2 * (len(that.seats) + 1))

	if that.status == StatusWaiting && len(that.seats) >= MinPlayers {
		that.status = StatusOngoing
	}

	that.notifyLocked()

	return player, nil
}

// ApplyMove writes the acting player's symbol into (row, col) and
// advances the turn. Outcome evaluation runs inside the same critical
// section, so two moves can never be applied before either is checked.
func (that *Session) ApplyMove(seatIndex, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case !that.active:
		return apperror.ErrGameInactive
	case that.status == StatusWaiting:
		return apperror.ErrGameIsNotStarted
	case that.status == StatusFinished:
		return apperror.ErrGameFinished
	}

	if seatIndex != that.turn {
		return apperror.ErrNotYourTurn
	}

	if err := that.board.Mark(row, col, that.seats[seatIndex].player.Symbol); err != nil {
		return fmt.Errorf("failed to mark cell: %w", err)
	}

	that.lastMove = &Move{Row: row, Col: col}

	if outcome := that.board.OutcomeFrom(row, col); outcome.Decided() {
		that.outcome = outcome
		that.status = StatusFinished
	}

	// The turn pointer rotates on every accepted move, a decisive one
	// included; a finished game simply stops consulting it.
	that.turn = (that.turn + 1) % len(that.seats)

	that.notifyLocked()

	return nil
}

// End deactivates the session, e.g. when a participant disconnects.
// A finished game keeps its outcome.
func (that *Session) End() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.active {
		return
	}

	that.active = false
	that.notifyLocked()
}

func (that *Session) Snapshot() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

func (that *Session) snapshotLocked() State {
	players := make([]entity.Player, len(that.seats))
	for i, s := range that.seats {
		players[i] = s.player
	}

	var lastMove *Move
	if that.lastMove != nil {
		move := *that.lastMove
		lastMove = &move
	}

	return State{
		ID:       that.ID,
		Board:    that.board.Cells(),
		Size:     that.board.Size(),
		Players:  players,
		Turn:     that.turn,
		Status:   that.status,
		Active:   that.active,
		Outcome:  that.outcome,
		LastMove: lastMove,
	}
}

// Broadcast renders a payload per seat and sends it to every seat whose
// last delivered payload differs. Composition and comparison happen
// under the session lock so no handler can observe a torn board
// mid-move; the writes run after the lock is released, so one slow
// recipient cannot stall moves or the other handlers. A failed write
// drops that recipient's update only.
func (that *Session) Broadcast(render func(state State, seatIndex int) string) State {
	type delivery struct {
		seat    *seat
		payload string
		seq     uint64
	}

	that.mu.Lock()

	state := that.snapshotLocked()

	var pending []delivery
	for i, s := range that.seats {
		payload := render(state, i)
		if payload == s.lastPayload {
			continue
		}

		s.lastPayload = payload
		s.seq++
		pending = append(pending, delivery{seat: s, payload: payload, seq: s.seq})
	}

	that.mu.Unlock()

	for _, d := range pending {
		d.seat.deliver(d.payload, d.seq)
	}

	return state
}

// Watch registers a notification channel signaled on every state
// change. The returned cancel func must be called when the watcher's
// handler exits.
func (that *Session) Watch() (<-chan struct{}, func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextWatcher
	that.nextWatcher++

	ch := make(chan struct{}, 1)
	that.watchers[id] = ch

	return ch, func() {
		that.mu.Lock()
		defer that.mu.Unlock()
		delete(that.watchers, id)
	}
}

func (that *Session) notifyLocked() {
	for _, ch := range that.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Joinable reports whether the session accepts another player: still
// active, not finished, and a symbol left in the palette.
func (that *Session) Joinable() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.active && that.status != StatusFinished && len(that.seats) < len(entity.Symbols)
}

// Summary is the registry listing entry for a session.
type Summary struct {
	ID       int `json:"id"`
	Players  int `json:"players"`
	Capacity int `json:"capacity"`
	Size     int `json:"board_size"`
}

func (that *Session) Summary() Summary {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Summary{
		ID:       that.ID,
		Players:  len(that.seats),
		Capacity: len(entity.Symbols),
		Size:     that.board.Size(),
	}
}
