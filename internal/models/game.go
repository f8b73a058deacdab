package models

import "time"

// Game represents a game in the catalog.
type Game struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Developer        string    `json:"developer"`
	Publisher        string    `json:"publisher"`
	ReleaseDate      string    `json:"release_date"`
	ShortDescription string    `json:"short_description"`
	FullDescription  string    `json:"full_description"`
	Genre            string    `json:"genre"`
	Tags             string    `json:"tags"`
	Rating           string    `json:"rating"`
	Difficulty       string    `json:"difficulty"`
	Image            string    `json:"image"`
	DownloadLink     string    `json:"download_link"`
	FileSize         string    `json:"file_size"`
	Requirements     string    `json:"requirements"`
	Notes            string    `json:"notes"`
	AddedBy          string    `json:"added_by"`
	Timestamp        time.Time `json:"timestamp"`
}

func (g Game) Key() int { return g.ID }

// Comment is a user comment on a game. Likes holds the usernames that liked it.
type Comment struct {
	ID        int       `json:"id"`
	GameID    int       `json:"game_id"`
	Author    string    `json:"author"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Likes     []string  `json:"likes"`
	Timestamp time.Time `json:"timestamp"`
}

func (c Comment) Key() int { return c.ID }

// Rating is a user's 1-10 score for a game. There is at most one per (UserID, GameID).
type Rating struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	GameID    int       `json:"game_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Rating) Key() int { return r.ID }

// Favorite links a user to a game they marked.
type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	GameID    int       `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (f Favorite) Key() int { return f.ID }
