package models

import "time"

// ServiceOwner identifies the decorator that offers a catalog entry.
type ServiceOwner struct {
	ID    string `bson:"id,omitempty" json:"id,omitempty"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
}

// Service is a catalog entry customers can book.
type Service struct {
	ID          string        `bson:"id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Category    string        `bson:"category" json:"category"`
	Price       float64       `bson:"price" json:"price"`
	Unit        string        `bson:"unit,omitempty" json:"unit,omitempty"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
	Decorator   *ServiceOwner `bson:"decorator,omitempty" json:"decorator,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ServiceUpdate carries the fields of a partial catalog edit; nil means unchanged.
type ServiceUpdate struct {
	Name        *string       `json:"name"`
	Category    *string       `json:"category"`
	Price       *float64      `json:"price"`
	Unit        *string       `json:"unit"`
	Description *string       `json:"description"`
	Image       *string       `json:"image"`
	Decorator   *ServiceOwner `json:"decorator"`
}

// ServiceFilter narrows a catalog listing.
type ServiceFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}
