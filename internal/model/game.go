package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/artem-pershin/checkers/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // websocket writes are not concurrent-safe
}

// Settings fixes how a game is set up.
type Settings struct {
	BoardSize  int
	RobotWhite bool
	Placement  Placement
	Options    []EngineOption
}

// The Game struct pairs one engine with the human playing it and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *Engine
	placement   Placement
	humanID     string
	selected    *Position
	legalMoves  []Position
	history     []Ply
	connections *GameConnections
}

type GameState struct {
	BoardSize      int          `json:"boardSize"`
	Pieces         []Piece      `json:"pieces"`
	ToMove         PlayerColor  `json:"toMove"`
	MoveHistory    []Ply        `json:"moveHistory"`
	SelectedSquare *Position    `json:"selectedSquare"`
	LegalMoves     []Position   `json:"legalMoves"`
	LastMove       *SimpleMove  `json:"lastMove"`
	Resolve        *string      `json:"resolve"`
	Winner         *PlayerColor `json:"winner"`
	Players        struct {
		Human ClientPlayer `json:"human"`
		Robot ClientPlayer `json:"robot"`
	} `json:"players"`
}

const (
	ResolveYouWin  = "you win"
	ResolveYouLose = "you lose"
)

// NewGame sets up a fresh game for the human humanID. If the robot plays
// white it makes the opening move straight away.
func NewGame(id, humanID string, settings Settings) (*Game, error) {
	engine := NewEngine(settings.BoardSize, settings.RobotWhite, settings.Options...)
	if err := engine.Initialize(settings.Placement); err != nil {
		return nil, fmt.Errorf("failed to initialize game %s: %w", id, err)
	}
	g := &Game{
		ID:          id,
		engine:      engine,
		placement:   settings.Placement,
		humanID:     humanID,
		history:     make([]Ply, 0),
		connections: NewGameConnections(),
	}
	g.playRobot()
	return g, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	state := GameState{
		BoardSize:      g.engine.BoardSize(),
		Pieces:         g.engine.AllPieces(),
		ToMove:         g.engine.Turn(),
		MoveHistory:    append([]Ply{}, g.history...),
		SelectedSquare: g.selected,
		LegalMoves:     append([]Position{}, g.legalMoves...),
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	if g.engine.IsGameEnded() {
		winner := g.engine.Winner()
		resolve := ResolveYouLose
		if g.engine.IsYouWin() {
			resolve = ResolveYouWin
		}
		state.Winner = &winner
		state.Resolve = &resolve
	}
	state.Players.Human = ClientPlayer{ID: g.humanID, Color: g.engine.HumanColor()}
	state.Players.Robot = ClientPlayer{Color: g.engine.RobotColor(), IsRobot: true}
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return g.humanID != "" && g.humanID == playerID
}

func (g *Game) checkCanAct(playerID string) error {
	if !g.isPlayerInGame(playerID) {
		return ErrNotPlayer
	}
	if g.engine.IsGameEnded() {
		return ErrGameOver
	}
	if g.engine.IsRobotMove() {
		return ErrNotYourTurn
	}
	return nil
}

// Select marks pos as the human's selected piece and returns its legal moves.
func (g *Game) Select(playerID string, pos Position) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkCanAct(playerID); err != nil {
		return nil, err
	}
	if !pos.inside(g.engine.BoardSize()) {
		return nil, ErrInvalidPosition
	}
	if !g.engine.NeedDrawPossibleMoves(pos) {
		return nil, fmt.Errorf("%w: no piece of yours on %v", ErrIllegalMove, pos)
	}
	g.selectPiece(pos)
	go g.broadcastState()
	return append([]Position{}, g.legalMoves...), nil
}

func (g *Game) selectPiece(pos Position) {
	g.selected = &pos
	g.legalMoves = g.engine.MovePositions(pos).Positions()
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.legalMoves = nil
}

// Click handles a click on a board cell: it moves the selected piece there if
// that is legal, otherwise it selects the clicked piece when it belongs to the
// side to move. Clicks on anything else are ignored.
func (g *Game) Click(playerID string, pos Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkCanAct(playerID); err != nil {
		return err
	}
	if !pos.inside(g.engine.BoardSize()) {
		return nil
	}

	if g.engine.CanMoveToPos(g.selected, pos) {
		if err := g.executeMove(*g.selected, pos); err != nil {
			return err
		}
	} else if g.engine.NeedDrawPossibleMoves(pos) {
		g.selectPiece(pos)
	} else {
		return nil
	}
	go g.broadcastState()
	return nil
}

func (g *Game) MakeMove(playerID string, move SimpleMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debug().Str("game", g.ID).Stringer("from", move.From).Stringer("to", move.To).Msg("making move")

	if err := g.checkCanAct(playerID); err != nil {
		return err
	}
	if err := g.executeMove(move.From, move.To); err != nil {
		return err
	}
	go g.broadcastState()
	return nil
}

// Restart puts the pieces back on their starting cells.
func (g *Game) Restart(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotPlayer
	}
	if err := g.engine.Initialize(g.placement); err != nil {
		return err
	}
	g.history = g.history[:0]
	g.clearSelection()
	g.playRobot()
	go g.broadcastState()
	return nil
}

func (g *Game) executeMove(from, to Position) error {
	ply, err := g.engine.Move(from, to)
	if err != nil {
		return err
	}
	g.history = append(g.history, ply)
	g.clearSelection()
	g.playRobot()
	return nil
}

// playRobot lets the robot answer until it is the human's turn or the game ends.
func (g *Game) playRobot() {
	for !g.engine.IsGameEnded() && g.engine.IsRobotMove() {
		ply, err := g.engine.DoRobotMove()
		if err != nil {
			log.Error().Err(err).Str("game", g.ID).Msg("robot could not move")
			return
		}
		log.Debug().Str("game", g.ID).Str("ply", ply.Notation).Msg("robot moved")
		g.history = append(g.history, ply)
	}
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Debug().Str("player", playerID).Str("conn", connID).Msg("registering connection")

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return errors.New("connection already exists")
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	payload, err := json.Marshal(g.GetState())
	if err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("failed to marshal state")
		return
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := g.write(conn, ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warn().Err(err).Str("game", g.ID).Str("player", playerID).Msg("failed to send state")
			g.UnregisterConnection(playerID)
		}
	}
}

// Send writes msg to the connection registered for playerID.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no connection for player %s", playerID)
	}
	return g.write(conn, msg)
}

func (g *Game) write(conn *websocket.Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
