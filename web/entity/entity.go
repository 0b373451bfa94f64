// Package entity defines data structures shared by the web layer.
package entity

// Msg is the JSON response envelope for API-style endpoints.
type Msg struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Obj     any    `json:"obj,omitempty"`
}
