package model

import (
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentTypeCustomer scopes segment to customer entities
const ContentTypeCustomer = "customer"

// ContentTypeCompany scopes segment to company entities
const ContentTypeCompany = "company"

// Condition operators
const (
	OperatorEqual       = "e"
	OperatorNotEqual    = "dne"
	OperatorContains    = "c"
	OperatorNotContains = "dnc"
	OperatorGreaterThan = "igt"
	OperatorLowerThan   = "ilt"
	OperatorIsSet       = "is"
	OperatorIsNotSet    = "ins"
)

// Condition is a single field predicate of a segment
type Condition struct {
	Field    string `json:"field" bson:"field"`
	Operator string `json:"operator" bson:"operator"`
	Value    string `json:"value" bson:"value"`
	Type     string `json:"type" bson:"type"`
}

// Filter translates condition to mongo filter document. Unknown operators
// produce a filter matching nothing, so a malformed stored condition narrows
// the result set to empty instead of failing the whole query.
func (c Condition) Filter() bson.M {
	switch c.Operator {
	case OperatorEqual:
		return bson.M{c.Field: c.typedValue()}
	case OperatorNotEqual:
		return bson.M{c.Field: bson.M{"$ne": c.typedValue()}}
	case OperatorContains:
		return bson.M{c.Field: primitive.Regex{Pattern: regexp.QuoteMeta(c.Value), Options: "i"}}
	case OperatorNotContains:
		return bson.M{c.Field: bson.M{"$not": primitive.Regex{Pattern: regexp.QuoteMeta(c.Value), Options: "i"}}}
	case OperatorGreaterThan:
		return bson.M{c.Field: bson.M{"$gt": c.typedValue()}}
	case OperatorLowerThan:
		return bson.M{c.Field: bson.M{"$lt": c.typedValue()}}
	case OperatorIsSet:
		return bson.M{c.Field: bson.M{"$exists": true, "$ne": ""}}
	case OperatorIsNotSet:
		return bson.M{"$or": bson.A{
			bson.M{c.Field: bson.M{"$exists": false}},
			bson.M{c.Field: ""},
		}}
	}
	return bson.M{"_id": bson.M{"$exists": false}}
}

func (c Condition) typedValue() any {
	if c.Type == "number" {
		if n, err := strconv.ParseFloat(c.Value, 64); err == nil {
			return n
		}
	}
	return c.Value
}

// Segment is a persisted, reusable set of filter conditions against one entity type
type Segment struct {
	ID          string      `json:"_id" bson:"_id,omitempty"`
	Name        string      `json:"name" bson:"name"`
	ContentType string      `json:"contentType" bson:"contentType"`
	Conditions  []Condition `json:"conditions" bson:"conditions"`
}

// Filter combines all segment conditions with logical AND
func (s *Segment) Filter() bson.M {
	if len(s.Conditions) == 0 {
		return bson.M{}
	}

	and := make(bson.A, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		and = append(and, c.Filter())
	}
	return bson.M{"$and": and}
}
