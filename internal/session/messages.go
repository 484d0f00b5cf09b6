package session

import (
	"lanewars/internal/battle"
	"lanewars/internal/units"
)

// Message types on the websocket.
const (
	TypeState       = "state"
	TypeEnded       = "ended"
	TypeSpawn       = "spawn"
	TypeRestart     = "restart"
	TypeSpawnResult = "spawn_result"
)

// Command is an inbound client frame.
type Command struct {
	Type string `json:"type" msgpack:"type"`
	Kind string `json:"kind,omitempty" msgpack:"kind,omitempty"`
}

// StateMessage carries one snapshot per tick.
type StateMessage struct {
	Type  string          `json:"type" msgpack:"type"`
	State battle.Snapshot `json:"state" msgpack:"state"`
}

// EndedMessage is sent once when a base falls.
type EndedMessage struct {
	Type     string      `json:"type" msgpack:"type"`
	Winner   battle.Side `json:"winner" msgpack:"winner"`
	Headline string      `json:"headline" msgpack:"headline"`
	Message  string      `json:"message" msgpack:"message"`
}

// SpawnResult answers a spawn command.
type SpawnResult struct {
	Type string     `json:"type" msgpack:"type"`
	Kind units.Kind `json:"kind" msgpack:"kind"`
	OK   bool       `json:"ok" msgpack:"ok"`
}

func endedMessage(r battle.Result) EndedMessage {
	return EndedMessage{Type: TypeEnded, Winner: r.Winner, Headline: r.Headline, Message: r.Message}
}
