package db

import (
	"time"

	"gorm.io/datatypes"
)

// DailyCounter is the per-date analytics aggregate: one row per calendar
// date (UTC, YYYY-MM-DD). The scalar Views field counts page views; the
// map-valued fields count section views and click targets, with keys
// introduced on first increment. Counters only ever increase and rows are
// never deleted by the application.
type DailyCounter struct {
	ID uint `gorm:"primaryKey" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Date string `gorm:"uniqueIndex;size:10;not null" json:"date"`

	Views int64 `gorm:"not null;default:0" json:"views"`

	// SectionViews and Clicks are jsonb maps of identifier -> count.
	// They are mutated only through the atomic upserts in counters.go.
	SectionViews datatypes.JSONMap `gorm:"type:jsonb" json:"sectionViews"`
	Clicks       datatypes.JSONMap `gorm:"type:jsonb" json:"clicks"`
}

// Hero is the landing banner. A single row exists; it is created with
// defaults on first read.
type Hero struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Headline         string `gorm:"size:255;not null" json:"headline" validate:"required"`
	Subtext          string `gorm:"size:512;not null" json:"subtext" validate:"required"`
	PrimaryCtaText   string `gorm:"size:128" json:"primaryCtaText"`
	PrimaryCtaLink   string `gorm:"size:255" json:"primaryCtaLink"`
	SecondaryCtaText string `gorm:"size:128" json:"secondaryCtaText"`
	SecondaryCtaLink string `gorm:"size:255" json:"secondaryCtaLink"`
	HeroImage        string `gorm:"size:255" json:"heroImage"`
}

// SocialLink is embedded in About as part of a jsonb array.
type SocialLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Icon     string `json:"icon"`
}

// About holds the bio section. Singleton like Hero.
type About struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Bio         string                          `gorm:"type:text;not null" json:"bio" validate:"required"`
	SocialLinks datatypes.JSONSlice[SocialLink] `gorm:"type:jsonb" json:"socialLinks"`
}

// Contact holds the contact section. Singleton like Hero.
type Contact struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email string `gorm:"size:255;not null" json:"email" validate:"required,email"`
	Phone string `gorm:"size:64" json:"phone"`
}

// Experience is one work-history entry on the timeline.
type Experience struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Role      string     `gorm:"size:255;not null" json:"role" validate:"required"`
	Company   string     `gorm:"size:255;not null" json:"company" validate:"required"`
	StartDate time.Time  `gorm:"not null" json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate"`
	IsCurrent bool       `gorm:"default:false" json:"isCurrent"`

	Description datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"description"`

	// SortOrder drives display ordering; "order" is kept out of column
	// names so raw statements never need quoting.
	SortOrder int `gorm:"index;column:sort_order;default:0" json:"order"`
}

// Project is a portfolio project card.
type Project struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text;not null" json:"description" validate:"required"`
	Category    string `gorm:"size:32;index;not null" json:"category" validate:"required,oneof=web ml web3 others"`
	MediaType   string `gorm:"size:16;default:image" json:"mediaType" validate:"omitempty,oneof=image video"`
	MediaURL    string `gorm:"size:255" json:"mediaUrl"`

	Technologies datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"technologies"`

	GithubURL string `gorm:"size:255" json:"githubUrl"`
	LiveURL   string `gorm:"size:255" json:"liveUrl"`
	Featured  bool   `gorm:"default:false" json:"featured"`
	SortOrder int    `gorm:"index;column:sort_order;default:0" json:"order"`
}

// ProductProject is a shipped-product showcase card. Same shape as Project
// minus the repository link, with its own category enum.
type ProductProject struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text;not null" json:"description" validate:"required"`
	Category    string `gorm:"size:32;index;not null" json:"category" validate:"required,oneof=saas b2b b2c tool other"`
	MediaType   string `gorm:"size:16;default:image" json:"mediaType" validate:"omitempty,oneof=image video"`
	MediaURL    string `gorm:"size:255" json:"mediaUrl"`

	Technologies datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"technologies"`

	LiveURL   string `gorm:"size:255" json:"liveUrl"`
	Featured  bool   `gorm:"default:false" json:"featured"`
	SortOrder int    `gorm:"index;column:sort_order;default:0" json:"order"`
}
