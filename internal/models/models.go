package models

type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Don't expose in JSON
}

type Garden struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author"`
	AuthorID int    `json:"author_id"`
}

// GardenDetail is the single-garden view: the garden plus its comments
// and flowers. The nested slices are always present in the JSON, empty
// when the garden has none.
type GardenDetail struct {
	Garden
	Comments []Comment `json:"comments"`
	Flowers  []Flower  `json:"flowers"`
}

// Comment carries the author's first name joined in from users so the
// client can render it without a second request.
type Comment struct {
	ID       int    `json:"id"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	AuthorID int    `json:"author_id"`
	GardenID int    `json:"garden_id,omitempty"`
}

// Flower has no author of its own; mutations are authorized against the
// parent garden's author.
type Flower struct {
	ID       int    `json:"id"`
	Color    string `json:"color"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	GardenID int    `json:"garden_id"`
}
