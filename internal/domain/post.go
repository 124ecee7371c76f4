package domain

import (
	"io"
	"time"
)

// Author is the domain representation of an author identity.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Group is the domain representation of a group.
type Group struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Post is the composed feed item: the post row with its author and group
// eagerly attached so consumers never look anything up per item.
type Post struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	Group     *Group    `json:"group,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is the domain representation of a comment on a post.
type Comment struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts AuthorModel to its domain representation.
func (m *AuthorModel) ToDomain() Author {
	return Author{ID: m.ID, Username: m.Username}
}

// ToDomain converts GroupModel to its domain representation.
func (m *GroupModel) ToDomain() Group {
	return Group{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
	}
}

// ToDomain converts PostModel (with preloaded Author/Group) to a composed Post.
func (m *PostModel) ToDomain() Post {
	p := Post{
		ID:        m.ID,
		Text:      m.Text,
		Author:    m.Author.ToDomain(),
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
	}
	if m.Group != nil {
		g := m.Group.ToDomain()
		p.Group = &g
	}
	return p
}

// ToDomain converts CommentModel (with preloaded Author) to a Comment.
func (m *CommentModel) ToDomain() Comment {
	return Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		Author:    m.Author.ToDomain(),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

// PostsToDomain converts a preloaded model slice to composed posts.
func PostsToDomain(models []PostModel) []Post {
	posts := make([]Post, 0, len(models))
	for i := range models {
		posts = append(posts, models[i].ToDomain())
	}
	return posts
}

// CommentsToDomain converts a preloaded model slice to comments.
func CommentsToDomain(models []CommentModel) []Comment {
	comments := make([]Comment, 0, len(models))
	for i := range models {
		comments = append(comments, models[i].ToDomain())
	}
	return comments
}

// Actor identifies the authenticated identity performing a request.
type Actor struct {
	ID       string
	Username string
}

// PostInput carries the submitted fields for creating or editing a post.
// Any author identity in the submission is ignored; the actor always
// becomes the author.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *ImageUpload
}

// ImageUpload carries uploaded image bytes to the storage collaborator.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// PostDetail is the read view of a single post with its comments.
type PostDetail struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}
