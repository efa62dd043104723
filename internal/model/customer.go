package model

import "time"

// Customer is customer model entity
type Customer struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName" bson:"lastName"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	TagIDs    []string  `json:"tagIds" bson:"tagIds"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// HasTag reports whether customer is labeled with provided tag
func (c *Customer) HasTag(tagID string) bool {
	for _, id := range c.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}
