package model

import (
	"time"
)

// Review holds a user's rating of a product, one per (user, product).
// Hard-deleted so the unique index never collides with a tombstone
// when a user re-reviews a product.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
