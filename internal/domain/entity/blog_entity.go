package entity

import "time"

type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	WriterID  string    `json:"writer_id"`
	Writer    *UserRef  `json:"writer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogDetail expands voter names alongside the writer.
type BlogDetail struct {
	Blog
	Upvotes   []UserRef `json:"upvotes"`
	Downvotes []UserRef `json:"downvotes"`
}
