package domain

import (
	"time"
)

// AuthorModel is the GORM model for the authors table. Authors are external
// identities (provisioned on first authenticated write), referenced by posts,
// comments and follow edges but never owned by them.
type AuthorModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuthorModel) TableName() string { return "authors" }

// GroupModel is the GORM model for the groups table.
type GroupModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (GroupModel) TableName() string { return "groups" }

// PostModel is the GORM model for the posts table. CreatedAt is set once at
// creation and never updated; edits touch text, group and image only.
type PostModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Text      string `gorm:"type:text;not null"`
	AuthorID  string `gorm:"type:varchar(36);not null;index"`
	Author    AuthorModel
	GroupID   *uint `gorm:"index"`
	Group     *GroupModel
	Image     string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (PostModel) TableName() string { return "posts" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	PostID    uint   `gorm:"not null;index"`
	AuthorID  string `gorm:"type:varchar(36);not null;index"`
	Author    AuthorModel
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (CommentModel) TableName() string { return "comments" }

// FollowModel is the GORM model for the follows table. UserID is the
// follower, AuthorID the followed author. The composite unique index keeps
// at most one edge per direction.
type FollowModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:uidx_follow_pair"`
	AuthorID  string    `gorm:"type:varchar(36);not null;uniqueIndex:uidx_follow_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }
