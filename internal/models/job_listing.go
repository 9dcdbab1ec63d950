package models

import "time"

type Category struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

type JobListing struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ClientID    uint64     `gorm:"not null;index" json:"client_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Budget      float64    `gorm:"type:decimal(10,2);not null" json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	CategoryID  *uint64    `gorm:"index" json:"category_id"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Client       Client        `gorm:"foreignKey:ClientID" json:"-"`
	Category     *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
