package model

import "time"

// Email config types
const (
	EmailConfigTypeSimple = "simple"
	EmailConfigTypeCustom = "custom"
)

// EmailConfig is brand outbound email configuration
type EmailConfig struct {
	Type     string `json:"type" bson:"type" validate:"required,oneof=simple custom"`
	Template string `json:"template" bson:"template"`
}

// Brand is tenant/grouping entity carrying its own email configuration
type Brand struct {
	ID          string       `json:"_id" bson:"_id,omitempty"`
	Code        string       `json:"code" bson:"code"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	UserID      string       `json:"userId" bson:"userId"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	EmailConfig *EmailConfig `json:"emailConfig" bson:"emailConfig"`
}

// NewBrand payload to create brand
type NewBrand struct {
	Code        string       `json:"code" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description"`
	UserID      string       `json:"userId"`
	EmailConfig *EmailConfig `json:"emailConfig"`
}
