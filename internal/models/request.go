package models

import "time"

// RequestStatus is the review state of a game request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// Request is a user's ask for a game to be added to the catalog.
type Request struct {
	ID        int           `json:"id"`
	SteamID   string        `json:"steam_id"`
	GameName  string        `json:"game_name"`
	Notes     string        `json:"notes"`
	Username  string        `json:"username"`
	Status    RequestStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

func (r Request) Key() int { return r.ID }
