package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	actionConnect   = "connect"
	actionNewGame   = "game:new"
	actionMove      = "game:move"
	actionUndo      = "game:undo"
	actionRestart   = "game:restart"
	actionDimension = "game:dimension"
	actionState     = "game:state"
)

const internalErrorText = "internal server error"

// clientErrors are reported to the client as is; anything else is hidden behind internalErrorText.
var clientErrors = []error{
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNoActiveGames,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidCell,
	apperror.ErrInvalidDimension,
	apperror.ErrNothingToUndo,
	apperror.ErrPlayerNotFound,
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player       *entity.Player `json:"player,omitempty"`
	Game         *Game          `json:"game,omitempty"`
	Move         *MoveRequest   `json:"move,omitempty"`
	Dimension    int            `json:"dimension,omitempty"`
	SinglePlayer bool           `json:"single_player,omitempty"`
	Error        string         `json:"error,omitempty"`
}

type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Game is the game as the client sees it: the stored record plus its derived status.
type Game struct {
	*entity.Game
	Dimension int               `json:"dimension"`
	Status    entity.GameStatus `json:"status"`
}

func newGameView(game *entity.Game) *Game {
	if game == nil {
		return nil
	}

	return &Game{
		Game:      game,
		Dimension: game.Dimension(),
		Status:    game.Status(),
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorText string) error {
	return that.sendMessage(conn, action, Payload{Error: errorText})
}

// sendResult - sends the game, or the error when the use case failed.
func (that *Server) sendResult(conn *websocket.Conn, action string, game *entity.Game, err error) error {
	if err != nil {
		that.logger.Warn("request failed", "action", action, "error", err)

		return that.sendErrorResponse(conn, action, errorText(err))
	}

	return that.sendMessage(conn, action, Payload{Game: newGameView(game)})
}

func errorText(err error) string {
	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			return clientErr.Error()
		}
	}

	return internalErrorText
}
