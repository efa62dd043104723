package handlers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// GraphQLHandler is http handler for graphql endpoint
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler builds new GraphQLHandler with schema assembled over provided services
func NewGraphQLHandler(customerSvc service.CustomerService, brandSvc service.BrandService, v *validation.Validator) (*GraphQLHandler, error) {
	s, err := schema(customerSvc, brandSvc, v)
	if err != nil {
		return nil, err
	}
	return &GraphQLHandler{schema: s}, nil
}

// Handle executes graphql request. Resolver errors are reported in response
// errors payload with status 200, only a malformed request is an http error
func (h *GraphQLHandler) Handle(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})

	if result.HasErrors() {
		for _, gqlErr := range result.Errors {
			logrus.Errorf("error occurred on graphql request processing - %v", gqlErr)
		}
	}

	return c.JSON(http.StatusOK, result)
}
