package models

import "encoding/json"

// WSMessage is the envelope written to live stream clients
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
