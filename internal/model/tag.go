package model

// TagTypeCustomer scopes tag to customer entities
const TagTypeCustomer = "customer"

// TagTypeCompany scopes tag to company entities
const TagTypeCompany = "company"

// Tag is labeled classification attachable to entities of declared type
type Tag struct {
	ID   string `json:"_id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
}
