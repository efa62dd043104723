package handlers

import (
	"encoding/json"

	"github.com/graphql-go/graphql"

	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"firstName": &graphql.Field{Type: graphql.String},
		"lastName":  &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"phone":     &graphql.Field{Type: graphql.String},
		"tagIds":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var customersListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CustomersListResponse",
	Fields: graphql.Fields{
		"list":       &graphql.Field{Type: graphql.NewList(customerType)},
		"totalCount": &graphql.Field{Type: graphql.Int},
	},
})

var customerCountsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CustomerCountsResponse",
	Fields: graphql.Fields{
		"bySegment":     &graphql.Field{Type: jsonScalar},
		"byTag":         &graphql.Field{Type: jsonScalar},
		"byFakeSegment": &graphql.Field{Type: graphql.Int},
	},
})

var emailConfigType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EmailConfig",
	Fields: graphql.Fields{
		"type":     &graphql.Field{Type: graphql.String},
		"template": &graphql.Field{Type: graphql.String},
	},
})

var brandType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Brand",
	Fields: graphql.Fields{
		"_id":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"code":        &graphql.Field{Type: graphql.String},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"userId":      &graphql.Field{Type: graphql.String},
		"createdAt":   &graphql.Field{Type: graphql.DateTime},
		"emailConfig": &graphql.Field{Type: emailConfigType},
	},
})

func customerQueryArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"page":        &graphql.ArgumentConfig{Type: graphql.Int},
		"perPage":     &graphql.ArgumentConfig{Type: graphql.Int},
		"segment":     &graphql.ArgumentConfig{Type: graphql.String},
		"tag":         &graphql.ArgumentConfig{Type: graphql.String},
		"ids":         &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
		"searchValue": &graphql.ArgumentConfig{Type: graphql.String},
	}
}

func customerCountsArgs() graphql.FieldConfigArgument {
	args := customerQueryArgs()
	args["byFakeSegment"] = &graphql.ArgumentConfig{Type: jsonScalar}
	return args
}

func schema(customerSvc service.CustomerService, brandSvc service.BrandService, v *validation.Validator) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"customers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Args: customerQueryArgs(),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return customerSvc.FindAll(p.Context, customerFilter(p.Args))
				},
			},
			"customersMain": &graphql.Field{
				Type: customersListType,
				Args: customerQueryArgs(),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, err := customerSvc.FindPage(p.Context, customerFilter(p.Args))
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"list":       page.List,
						"totalCount": page.TotalCount,
					}, nil
				},
			},
			"customerCounts": &graphql.Field{
				Type: customerCountsType,
				Args: customerCountsArgs(),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					fake, err := fakeSegmentArg(p.Args)
					if err != nil {
						return nil, err
					}

					counts, err := customerSvc.Counts(p.Context, customerFilter(p.Args), fake)
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"bySegment":     counts.BySegment,
						"byTag":         counts.ByTag,
						"byFakeSegment": counts.ByFakeSegment,
					}, nil
				},
			},
			"customerDetail": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := customerSvc.FindByID(p.Context, stringArg(p.Args, "_id"))
					if err != nil {
						return nil, err
					}
					if c == nil {
						return nil, nil
					}
					return c, nil
				},
			},
			"brands": &graphql.Field{
				Type: graphql.NewList(brandType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return brandSvc.FindAll(p.Context)
				},
			},
			"brandDetail": &graphql.Field{
				Type: brandType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					b, err := brandSvc.FindByID(p.Context, stringArg(p.Args, "_id"))
					if err != nil {
						return nil, err
					}
					if b == nil {
						return nil, nil
					}
					return b, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"updateCustomer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"_id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"firstName": &graphql.ArgumentConfig{Type: graphql.String},
					"lastName":  &graphql.ArgumentConfig{Type: graphql.String},
					"email":     &graphql.ArgumentConfig{Type: graphql.String},
					"phone":     &graphql.ArgumentConfig{Type: graphql.String},
					"tagIds":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := customerSvc.FindByID(p.Context, stringArg(p.Args, "_id"))
					if err != nil {
						return nil, err
					}
					if c == nil {
						return nil, nil
					}

					if v, ok := p.Args["firstName"].(string); ok {
						c.FirstName = v
					}
					if v, ok := p.Args["lastName"].(string); ok {
						c.LastName = v
					}
					if v, ok := p.Args["email"].(string); ok {
						c.Email = v
					}
					if v, ok := p.Args["phone"].(string); ok {
						c.Phone = v
					}
					if _, ok := p.Args["tagIds"]; ok {
						c.TagIDs = stringSliceArg(p.Args, "tagIds")
					}

					updated, err := customerSvc.Update(p.Context, c)
					if err != nil {
						return nil, err
					}
					if updated == nil {
						return nil, nil
					}
					return updated, nil
				},
			},
			"deleteCustomer": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if err := customerSvc.DeleteByID(p.Context, stringArg(p.Args, "_id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"createBrand": &graphql.Field{
				Type: brandType,
				Args: graphql.FieldConfigArgument{
					"code":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"userId":      &graphql.ArgumentConfig{Type: graphql.String},
					"emailConfig": &graphql.ArgumentConfig{Type: jsonScalar},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					nb := &model.NewBrand{
						Code:        stringArg(p.Args, "code"),
						Name:        stringArg(p.Args, "name"),
						Description: stringArg(p.Args, "description"),
						UserID:      stringArg(p.Args, "userId"),
					}

					if raw, ok := p.Args["emailConfig"]; ok && raw != nil {
						var cfg model.EmailConfig
						if err := decodeArg(raw, &cfg); err != nil {
							return nil, err
						}
						nb.EmailConfig = &cfg
					}

					if err := v.Validate(nb); err != nil {
						return nil, err
					}
					return brandSvc.Create(p.Context, nb)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func customerFilter(args map[string]any) service.CustomerFilter {
	return service.CustomerFilter{
		Page:        intArg(args, "page"),
		PerPage:     intArg(args, "perPage"),
		SegmentID:   stringArg(args, "segment"),
		TagID:       stringArg(args, "tag"),
		IDs:         stringSliceArg(args, "ids"),
		SearchValue: stringArg(args, "searchValue"),
	}
}

func fakeSegmentArg(args map[string]any) (*service.FakeSegment, error) {
	raw, ok := args["byFakeSegment"]
	if !ok || raw == nil {
		return nil, nil
	}

	var fake service.FakeSegment
	if err := decodeArg(raw, &fake); err != nil {
		return nil, err
	}
	return &fake, nil
}

// decodeArg maps loosely-typed json argument to target struct
func decodeArg(raw any, target any) error {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, target)
}

func stringArg(args map[string]any, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, name string) int64 {
	if v, ok := args[name].(int); ok {
		return int64(v)
	}
	return 0
}

func stringSliceArg(args map[string]any, name string) []string {
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}

	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
