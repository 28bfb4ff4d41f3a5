package entity

// Player is a connected client. It owns at most one live game.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}

func (that *Player) HasGame() bool {
	return that.GameID != ""
}
