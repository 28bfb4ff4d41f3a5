package websocket

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

// decodePayload - reads the payload and checks the player is present. ok is false when an
// error response has already been sent.
func (that *Server) decodePayload(msg *Message, conn *websocket.Conn) (Payload, bool, error) {
	var payload Payload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return payload, false, that.sendErrorResponse(conn, msg.Action, "invalid payload")
		}
	}

	if payload.Player == nil {
		return payload, false, that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	return payload, true, nil
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	player, game, err := that.gameUseCase.Connect(ctx, payload.Player.ID)
	if err != nil {
		log.Error("failed to connect player", "error", err)

		return that.sendErrorResponse(conn, msg.Action, errorText(err))
	}

	log.Info("successfully connected player", "player_id", player.ID)

	return that.sendMessage(conn, msg.Action, Payload{Player: player, Game: newGameView(game)})
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.NewGame(ctx, payload.Player.ID, payload.Dimension, payload.SinglePlayer)

	return that.sendResult(conn, msg.Action, game, err)
}

func (that *Server) handleMove(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	if payload.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "move is required")
	}

	game, err := that.gameUseCase.MakeMove(ctx, payload.Player.ID, payload.Move.Row, payload.Move.Col)

	return that.sendResult(conn, msg.Action, game, err)
}

func (that *Server) handleUndo(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.Undo(ctx, payload.Player.ID)

	return that.sendResult(conn, msg.Action, game, err)
}

func (that *Server) handleRestart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.Restart(ctx, payload.Player.ID, payload.Dimension)

	return that.sendResult(conn, msg.Action, game, err)
}

func (that *Server) handleDimension(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.CycleDimension(ctx, payload.Player.ID)

	return that.sendResult(conn, msg.Action, game, err)
}

func (that *Server) handleState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(msg, conn)
	if !ok {
		return err
	}

	game, err := that.gameUseCase.GetGame(ctx, payload.Player.ID)

	return that.sendResult(conn, msg.Action, game, err)
}
