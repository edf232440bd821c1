package models

import "time"

type Product struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       int64     `bson:"price" json:"price"`
	Images      []string  `bson:"images" json:"images"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Stock       int       `bson:"stock" json:"stock"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProductInput is used for create (all required fields) and patch (nil = unchanged).
type ProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"isActive"`
}

type Blog struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Slug      string    `bson:"slug" json:"slug"`
	Excerpt   string    `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content   string    `bson:"content" json:"content"`
	Author    string    `bson:"author,omitempty" json:"author,omitempty"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	Tags      []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Published bool      `bson:"published" json:"published"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type BlogInput struct {
	Title     *string  `json:"title"`
	Excerpt   *string  `json:"excerpt"`
	Content   *string  `json:"content"`
	Author    *string  `json:"author"`
	Image     *string  `json:"image"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

type Event struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location" json:"location"`
	StartsAt    time.Time `bson:"startsAt" json:"startsAt"`
	EndsAt      time.Time `bson:"endsAt,omitempty" json:"endsAt,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Video       string    `bson:"video,omitempty" json:"video,omitempty"`
	Price       int64     `bson:"price" json:"price"`
	Capacity    int       `bson:"capacity,omitempty" json:"capacity,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type EventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Image       *string    `json:"image"`
	Video       *string    `json:"video"`
	Price       *int64     `json:"price"`
	Capacity    *int       `json:"capacity"`
}
