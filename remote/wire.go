package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/beka-birhanu/pacmon-arena/game"
)

// Remote payload errors.
var (
	ErrMalformedRemoteState = errors.New("malformed remote state")
)

// Response is the uniform envelope every call returns. Transport errors,
// non-2xx statuses and undecodable bodies all surface as Success false.
type Response struct {
	Success bool
	Data    json.RawMessage // Raw body of a successful call.
	Hash    string          // Hash reported by the update endpoint, if any.
	Err     error
}

// PlayerState is the body the current player is pushed with.
type PlayerState struct {
	ID         string   `json:"id"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Direction  string   `json:"direction"`
	Username   string   `json:"username"`
	Color      string   `json:"color"`
	Score      int      `json:"score"`
	Eliminated []string `json:"eliminated,omitempty"`
}

type updateRequest struct {
	Player PlayerState `json:"player"`
}

type updateResponse struct {
	Hash string `json:"hash,omitempty"`
}

// remotePlayer mirrors one roster entry. Required fields are pointers so a
// missing field can be told apart from a zero value.
type remotePlayer struct {
	ID             *string  `json:"id" validate:"required,min=1"`
	X              *float64 `json:"x" validate:"required"`
	Y              *float64 `json:"y" validate:"required"`
	Direction      string   `json:"direction" validate:"omitempty,oneof=up down left right"`
	Username       string   `json:"username"`
	Color          string   `json:"color"`
	OriginalColor  string   `json:"originalColor"`
	Score          *int     `json:"score" validate:"required,gte=0"`
	IsPoweredUp    bool     `json:"isPoweredUp"`
	PowerUpEndTime int64    `json:"powerUpEndTime"` // Unix milliseconds.
}

type gameState struct {
	Players *[]remotePlayer `json:"players" validate:"required,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// StateOf builds the push body for p, carrying the ids it eliminated.
func StateOf(p game.Player, eliminated []string) PlayerState {
	return PlayerState{
		ID:         p.ID,
		X:          p.X,
		Y:          p.Y,
		Direction:  p.Direction.String(),
		Username:   p.Username,
		Color:      p.Color,
		Score:      p.Score,
		Eliminated: eliminated,
	}
}

// DecodeRoster validates the body of a game state pull. Any missing or
// invalid required field makes the whole payload malformed.
func DecodeRoster(resp Response) ([]game.Player, error) {
	if !resp.Success {
		return nil, fmt.Errorf("%w: unsuccessful response: %v", ErrMalformedRemoteState, resp.Err)
	}

	var st gameState
	if err := json.Unmarshal(resp.Data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRemoteState, err)
	}
	if err := validate.Struct(st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRemoteState, err)
	}

	players := make([]game.Player, 0, len(*st.Players))
	for _, rp := range *st.Players {
		players = append(players, rp.toPlayer())
	}
	return players, nil
}

// toPlayer converts a validated entry.
func (rp remotePlayer) toPlayer() game.Player {
	dir := game.Right
	if rp.Direction != "" {
		dir, _ = game.ParseDirection(rp.Direction)
	}

	color := rp.Color
	if color == "" {
		color = game.DefaultColor
	}
	original := rp.OriginalColor
	if original == "" {
		original = color
	}

	p := game.Player{
		ID:            *rp.ID,
		X:             *rp.X,
		Y:             *rp.Y,
		Direction:     dir,
		Username:      rp.Username,
		Color:         color,
		OriginalColor: original,
		Score:         *rp.Score,
		IsPoweredUp:   rp.IsPoweredUp,
	}
	if rp.IsPoweredUp && rp.PowerUpEndTime > 0 {
		p.PowerUpEndTime = time.UnixMilli(rp.PowerUpEndTime)
	}
	return p
}
