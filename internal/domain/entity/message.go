package entity

import "time"

// Message mensaje del chat. Solo se agregan, nunca se borran.
type Message struct {
	ID        string
	User      string
	Text      string
	CreatedAt time.Time
}
