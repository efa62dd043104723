package handlers

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// jsonScalar passes arbitrary json values through untouched. Used for
// loosely-shaped arguments (fake segment definition) and grouped count maps
var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "Arbitrary json value",
	Serialize: func(value any) any {
		return value
	},
	ParseValue: func(value any) any {
		return value
	},
	ParseLiteral: parseJSONLiteral,
})

func parseJSONLiteral(valueAST ast.Value) any {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		if n, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return n
		}
		return v.Value
	case *ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.ListValue:
		values := make([]any, 0, len(v.Values))
		for _, item := range v.Values {
			values = append(values, parseJSONLiteral(item))
		}
		return values
	case *ast.ObjectValue:
		obj := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			obj[f.Name.Value] = parseJSONLiteral(f.Value)
		}
		return obj
	}
	return nil
}
