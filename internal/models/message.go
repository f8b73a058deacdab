package models

import "time"

// Thread is a discussion topic. MessageCount and LastActivity are derived
// from the thread's messages and rewritten whenever a message is posted or removed.
type Thread struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	AuthorRole   Role      `json:"author_role"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
	Locked       bool      `json:"locked"`
}

func (t Thread) Key() int { return t.ID }

// Message represents a post within a thread.
type Message struct {
	ID         int       `json:"id"`
	ThreadID   int       `json:"thread_id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorRole Role      `json:"author_role"`
	CreatedAt  time.Time `json:"created_at"`
	Likes      []string  `json:"likes"`
}

func (m Message) Key() int { return m.ID }
