package demo

import (
	"github.com/google/uuid"

	"github.com/kbukum/fixturekit/database"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is a blog author.
type User struct {
	database.BaseModel
	Name     string `gorm:"size:120;not null"`
	Email    string `gorm:"size:190;uniqueIndex;not null"`
	Password string `gorm:"size:100;not null"`
	Role     string `gorm:"size:20;not null;default:member"`
	Posts    int    `gorm:"not null;default:0"`
}

// Post is an article written by a user.
type Post struct {
	database.BaseModel
	AuthorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Title    string    `gorm:"size:200;not null"`
	Slug     string    `gorm:"size:220;uniqueIndex;not null"`
	Body     string    `gorm:"type:text"`
}

// Comment is a reply to a post.
type Comment struct {
	database.BaseModel
	PostID   uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Body     string    `gorm:"type:text"`
}

// Models returns every demo model, in dependency order, for auto-migration.
func Models() []interface{} {
	return []interface{}{&User{}, &Post{}, &Comment{}}
}
