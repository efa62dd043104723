package infra

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/handlers"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

// Router assembles echo application serving graphql endpoint
func Router(db *mongo.Database, redisClient *redis.Client) (*echo.Echo, error) {
	e := echo.New()

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		c.Logger().Error(err.Error())
		e.DefaultHTTPErrorHandler(err, c)
	}

	// Validation
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.NewBusinessErr("translator", "failed to find en translations")
	}

	v := validation.New(validator.New(), trans)
	e.Validator = v

	// Repositories
	customerRps := repository.NewMongoCustomerRepository(db)
	segmentRps := repository.NewMongoSegmentRepository(db)
	tagRps := repository.NewMongoTagRepository(db)
	brandRps := repository.NewMongoBrandRepository(db)

	// Cache
	customerCache := cache.NewRedisCustomerCacheRepository(redisClient)

	// Services
	customerSvc := service.NewCustomerService(customerRps, segmentRps, tagRps, customerCache)
	brandSvc := service.NewBrandService(brandRps)

	// Handlers
	graphqlHandler, err := handlers.NewGraphQLHandler(customerSvc, brandSvc, v)
	if err != nil {
		return nil, err
	}

	e.POST("/graphql", graphqlHandler.Handle)

	return e, nil
}
