package models

import "time"

// Review is a customer's feedback on a finished project.
type Review struct {
	UserEmail string    `bson:"userEmail" json:"userEmail"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Decorator is a service provider that can be assigned to bookings.
type Decorator struct {
	ID                string          `bson:"id" json:"id"`
	Name              string          `bson:"name" json:"name"`
	Email             string          `bson:"email" json:"email"`
	District          string          `bson:"district" json:"district"`
	Specialties       []string        `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Status            DecoratorStatus `bson:"status" json:"status"`
	WorkStatus        WorkStatus      `bson:"workStatus" json:"workStatus"`
	Rating            float64         `bson:"rating" json:"rating"`
	CompletedProjects int             `bson:"completedProjects" json:"completedProjects"`
	Reviews           []Review        `bson:"reviews,omitempty" json:"reviews,omitempty"`
	Bio               string          `bson:"bio,omitempty" json:"bio,omitempty"`
	Photo             string          `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt         time.Time       `bson:"createdAt" json:"createdAt"`
}

// Ref returns the snapshot copied onto a booking.
func (d *Decorator) Ref() DecoratorRef {
	return DecoratorRef{ID: d.ID, Name: d.Name, Email: d.Email}
}

// DecoratorFilter narrows a decorator listing.
type DecoratorFilter struct {
	Status     DecoratorStatus
	WorkStatus WorkStatus
	District   string
}
