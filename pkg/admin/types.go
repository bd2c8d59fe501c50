package admin

import (
	"encoding/json"
	"time"
)

type Category struct {
	ID           string    `json:"_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Slug         string    `json:"slug"`
	IsActive     bool      `json:"isActive"`
	Image        string    `json:"image,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// CategoryRef is a product's category: either a bare id or the populated record.
type CategoryRef struct {
	ID       string
	Category *Category
}

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		c.ID = id
		c.Category = nil
		return nil
	}
	var cat Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return err
	}
	c.ID = cat.ID
	c.Category = &cat
	return nil
}

func (c CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ID)
}

type Product struct {
	ID            string      `json:"_id,omitempty"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Slug          string      `json:"slug"`
	CategoryID    CategoryRef `json:"categoryId"`
	Images        []string    `json:"images"`
	MainImage     string      `json:"mainImage"`
	Type          string      `json:"type"`
	Artist        string      `json:"artist,omitempty"`
	IsActive      bool        `json:"isActive"`
	ViewCount     int         `json:"viewCount"`
	RelatedImages []string    `json:"relatedImages"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
	UpdatedAt     time.Time   `json:"updatedAt,omitempty"`
}

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Post struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Author    string    `json:"author,omitempty"`
	Status    string    `json:"status"`
	Tags      []string  `json:"tags"`
	ViewCount int       `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Admin is the authenticated administrator profile.
type Admin struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type authResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Credentials are sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is sent to the register endpoint.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}
