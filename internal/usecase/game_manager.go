package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/service"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	SelectMove(board *entity.Board, computer, human entity.Mark) (entity.Coord, error)
}

// Settings - game rules the manager applies to every new or restarted game.
type Settings struct {
	// Dimensions is the cycle of board sizes; the first one is the default.
	Dimensions []int
	FirstTurn  gomoku.FirstTurn
}

// NextDimension - the size that follows current in the cycle. Unknown sizes restart the cycle.
func (that Settings) NextDimension(current int) int {
	index := slices.Index(that.Dimensions, current)

	return that.Dimensions[(index+1)%len(that.Dimensions)]
}

// GameManager runs one game per player. Entry points are serialised so each
// move, undo or restart is applied atomically together with the computer's reply.
type GameManager struct {
	mu sync.Mutex

	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	bot        botService
	rng        gomoku.Randomizer
	settings   Settings
}

func NewGameManager(
	logger *slog.Logger,
	playerRepo playerRepo,
	gameRepo gameRepo,
	bot botService,
	rng gomoku.Randomizer,
	settings Settings,
) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		bot:        bot,
		rng:        rng,
		settings:   settings,
	}
}

// Connect - returns the player, creating one when id is empty, and its current game if it still exists.
func (that *GameManager) Connect(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.getOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if !player.HasGame() {
		return player, nil, nil
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.logger.Info("game session expired", "player_id", player.ID, "game_id", player.GameID)

		player.GameID = ""
		if err = that.updatePlayer(ctx, player); err != nil {
			return nil, nil, err
		}

		return player, nil, nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	return player, game, nil
}

// NewGame - replaces the player's game with a fresh one. A zero dimension picks the first configured size.
// In single-player mode the human plays X and the computer opens when O starts.
func (that *GameManager) NewGame(ctx context.Context, playerID string, dimension int, singlePlayer bool) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if dimension == 0 {
		dimension = that.settings.Dimensions[0]
	}

	if err := that.validateDimension(dimension); err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.HasGame() {
		that.deleteGame(ctx, player.GameID)
	}

	gameID := pkg.GenerateGameID()
	firstTurn := that.settings.FirstTurn.Mark(that.rng)

	var game *entity.Game
	if singlePlayer {
		game = entity.NewSinglePlayerGame(gameID, dimension, firstTurn)
	} else {
		game = entity.NewGame(gameID, dimension, firstTurn)
	}

	that.playComputer(that.newController(game))

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	player.GameID = game.ID
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	that.logger.Info("game created",
		"game_id", game.ID, "player_id", player.ID, "dimension", dimension, "single_player", singlePlayer)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, game, err := that.getPlayerGame(ctx, playerID)

	return game, err
}

// MakeMove - applies the player's move and, in single-player mode, the computer's reply.
func (that *GameManager) MakeMove(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !game.Board.Contains(row, col) {
		return game, fmt.Errorf("%w: (%d,%d) on a %dx%d board", apperror.ErrInvalidCell, row, col, game.Dimension(), game.Dimension())
	}

	if game.IsComputerTurn() {
		return game, apperror.ErrNotYourTurn
	}

	controller := that.newController(game)

	if !controller.ApplyMove(row, col) {
		if game.IsWon() {
			return game, apperror.ErrGameFinished
		}

		return game, apperror.ErrCellOccupied
	}

	that.playComputer(controller)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsWon() {
		that.logger.Info("game won", "game_id", game.ID, "winner", game.Winner.String())
	}

	return game, nil
}

// Undo - takes back the last move. In single-player mode it keeps undoing until the human is to move.
// The computer's opening move is never taken back.
func (that *GameManager) Undo(ctx context.Context, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if isComputerOpening(game) {
		return game, apperror.ErrNothingToUndo
	}

	controller := that.newController(game)

	if !controller.Undo() {
		return game, apperror.ErrNothingToUndo
	}

	if game.IsComputerTurn() && len(game.History) > 0 {
		controller.Undo()
	}

	that.playComputer(controller)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Restart - starts over in the same mode. A zero dimension keeps the current size.
func (that *GameManager) Restart(ctx context.Context, playerID string, dimension int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.restart(ctx, playerID, func(current int) int {
		if dimension == 0 {
			return current
		}

		return dimension
	})
}

// CycleDimension - restarts with the next size of the configured cycle.
func (that *GameManager) CycleDimension(ctx context.Context, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.restart(ctx, playerID, that.settings.NextDimension)
}

func (that *GameManager) restart(ctx context.Context, playerID string, pickDimension func(current int) int) (*entity.Game, error) {
	_, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	dimension := pickDimension(game.Dimension())
	if err = that.validateDimension(dimension); err != nil {
		return game, err
	}

	controller := that.newController(game)
	controller.Restart(dimension)
	that.playComputer(controller)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game restarted", "game_id", game.ID, "dimension", dimension)

	return game, nil
}

func (that *GameManager) newController(game *entity.Game) *gomoku.GameController {
	return gomoku.NewGameController(game, that.settings.FirstTurn, that.rng)
}

// playComputer - lets the computer move when it owes one. A full board leaves the game as it is.
func (that *GameManager) playComputer(controller *gomoku.GameController) {
	game := controller.Game()
	if !game.IsComputerTurn() {
		return
	}

	log := that.logger.With("method", "playComputer", "game_id", game.ID)

	move, err := that.bot.SelectMove(controller.Board(), game.ComputerMark, game.HumanMark)
	if err != nil {
		if !errors.Is(err, service.ErrNoAvailableMoves) {
			log.Error("failed to select computer move", "error", err)
		}

		return
	}

	if !controller.ApplyMove(move.Row, move.Col) {
		log.Error("computer move was rejected", "row", move.Row, "col", move.Col)
	}
}

func (that *GameManager) getPlayerGame(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if !player.HasGame() {
		return player, nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if err != nil {
		return player, nil, fmt.Errorf("failed to get game: %w", err)
	}

	return player, game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, gameID string) {
	log := that.logger.With("method", "deleteGame")

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "game_id", gameID, "error", err)

		return
	}

	log.Info("game deleted", "game_id", gameID)
}

func (that *GameManager) getOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	return that.getPlayerByID(ctx, id)
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

// validateDimension - only sizes from the configured cycle are playable.
func (that *GameManager) validateDimension(dimension int) error {
	if dimension < entity.MinDimension || !slices.Contains(that.settings.Dimensions, dimension) {
		return fmt.Errorf("%w: %d, expected one of %v", apperror.ErrInvalidDimension, dimension, that.settings.Dimensions)
	}

	return nil
}

// isComputerOpening - true when the only move on the board is the computer's opening.
func isComputerOpening(game *entity.Game) bool {
	return game.SinglePlayer && len(game.History) == 1 && game.History[0].Mark == game.ComputerMark
}
