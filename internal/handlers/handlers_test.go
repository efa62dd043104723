package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

const (
	connectionTimeout = 3 * time.Second
)

const (
	mongoContainerName = "mongo-handlers-test-crm"
	mongoPort          = "27018"
	mongoTestUser      = "handlers-test"
	mongoTestPassword  = "handlers-test"
	mongoTestDB        = "crm"
)

const (
	redisContainerName = "redis-handlers-test-crm"
	redisTestPassword  = "handlers-test"
	redisPort          = "6380"
	redisTestDB        = 0
)

const (
	goldTagID        = "0b1107e4-29d6-4b27-b80c-66a4a5b3f9a8"
	partnerTagID     = "63be2c37-9dff-41b0-9853-4e54ac7ed6e3"
	johnsSegmentID   = "7d9bfa16-adf4-4a87-b04e-27f5d9f44b26"
	companySegmentID = "b0fbf4cc-7acb-4793-b2a0-11b79bbbf4f3"
)

type handlersDockerResources struct {
	mongodb *dockertest.Resource
	redis   *dockertest.Resource
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type handlersTestSuite struct {
	suite.Suite
	app         *echo.Echo
	dockerPool  *dockertest.Pool
	resources   handlersDockerResources
	mongoClient *mongo.Client
	redisClient *redis.Client
}

//nolint:funlen // function contains a lot of boilerplate actions
func (s *handlersTestSuite) SetupSuite() {
	t := s.T()
	assert := s.Require()

	dockerPool, err := dockertest.NewPool("")
	assert.NoError(err, "failed to create docker pool")
	s.dockerPool = dockerPool

	assert.NoError(dockerPool.Client.Ping(), "failed to connect to docker")

	// start mongo
	t.Log("starting mongodb...")
	mongodb, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       mongoContainerName,
		Repository: "mongo",
		Tag:        "latest",
		Env: []string{
			fmt.Sprintf("MONGO_INITDB_ROOT_USERNAME=%s", mongoTestUser),
			fmt.Sprintf("MONGO_INITDB_ROOT_PASSWORD=%s", mongoTestPassword),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"27017/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", mongoPort)}},
		},
	})
	assert.NoError(err, "failed to start mongodb")
	s.resources.mongodb = mongodb

	// connect to mongo
	t.Log("connecting to mongodb...")
	mongoURI := fmt.Sprintf("mongodb://%s:%s@localhost:%s/?maxPoolSize=100", mongoTestUser, mongoTestPassword, mongoPort)
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		s.mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			return err
		}
		return s.mongoClient.Ping(ctx, readpref.Primary())
	})
	assert.NoError(err, "failed to establish connection to mongodb")

	// start redis
	t.Log("starting redis...")
	redisCache, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       redisContainerName,
		Repository: "redis",
		Tag:        "latest",
		Cmd:        []string{fmt.Sprintf("--requirepass %s", redisTestPassword)},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", redisPort)}},
		},
	})
	assert.NoError(err, "failed to start redis")
	s.resources.redis = redisCache

	// connect to redis
	t.Log("connecting to redis...")
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("localhost:%s", redisPort),
			Password: redisTestPassword,
			DB:       redisTestDB,
		})

		return s.redisClient.Ping(ctx).Err()
	})
	assert.NoError(err, "failed to establish connection to redis")

	// create validator
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		assert.Fail("failed to build validator because of missing en translations")
	}
	v := validation.New(validator.New(), trans)

	// assemble application
	db := s.mongoClient.Database(mongoTestDB)

	customerRps := repository.NewMongoCustomerRepository(db)
	segmentRps := repository.NewMongoSegmentRepository(db)
	tagRps := repository.NewMongoTagRepository(db)
	brandRps := repository.NewMongoBrandRepository(db)
	customerCache := cache.NewRedisCustomerCacheRepository(s.redisClient)

	customerSvc := service.NewCustomerService(customerRps, segmentRps, tagRps, customerCache)
	brandSvc := service.NewBrandService(brandRps)

	graphqlHandler, err := NewGraphQLHandler(customerSvc, brandSvc, v)
	assert.NoError(err, "failed to build graphql handler")

	s.app = echo.New()
	s.app.Validator = v
	s.app.POST("/graphql", graphqlHandler.Handle)
}

func (s *handlersTestSuite) TearDownSuite() {
	t := s.T()

	if s.redisClient != nil {
		t.Log("closing connection to redis")
		if err := s.redisClient.Close(); err != nil {
			t.Logf("failed to gracefully close connection to redis - %v", err)
		}
	}

	if s.mongoClient != nil {
		t.Log("closing connection to mongodb")
		if err := s.mongoClient.Disconnect(context.Background()); err != nil {
			t.Logf("failed to gracefully close connection to mongodb - %v", err)
		}
	}

	if s.resources.mongodb != nil {
		if err := s.dockerPool.Purge(s.resources.mongodb); err != nil {
			t.Logf("failed to purge mongodb container - %v", err)
		}
	}

	if s.resources.redis != nil {
		if err := s.dockerPool.Purge(s.resources.redis); err != nil {
			t.Logf("failed to purge redis container - %v", err)
		}
	}
}

func (s *handlersTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert := s.Require()

	assert.NoError(s.mongoClient.Database(mongoTestDB).Drop(ctx), "failed to drop test database")
	assert.NoError(s.redisClient.FlushDB(ctx).Err(), "failed to flush redis")

	db := s.mongoClient.Database(mongoTestDB)

	createdAt := time.Date(2022, time.July, 1, 10, 0, 0, 0, time.UTC)
	customers := []any{
		&model.Customer{ID: "c-1", FirstName: "John", LastName: "Walls", Email: "john.walls@somemail.com", Phone: "+12025550101", TagIDs: []string{goldTagID}, CreatedAt: createdAt},
		&model.Customer{ID: "c-2", FirstName: "Jane", LastName: "Pierce", Email: "jane.pierce@somemail.com", Phone: "+12025550102", TagIDs: []string{goldTagID}, CreatedAt: createdAt.Add(time.Minute)},
		&model.Customer{ID: "c-3", FirstName: "Bob", LastName: "Martin", Email: "bob.martin@somemail.com", Phone: "+12025550103", TagIDs: []string{}, CreatedAt: createdAt.Add(2 * time.Minute)},
		&model.Customer{ID: "c-4", FirstName: "Alice", LastName: "Stone", Email: "alice.stone@somemail.com", Phone: "+12025550104", TagIDs: []string{}, CreatedAt: createdAt.Add(3 * time.Minute)},
	}
	_, err := db.Collection("customers").InsertMany(ctx, customers)
	assert.NoError(err, "failed to seed customers")

	tags := []any{
		&model.Tag{ID: goldTagID, Name: "gold", Type: model.TagTypeCustomer},
		&model.Tag{ID: partnerTagID, Name: "partner", Type: model.TagTypeCompany},
	}
	_, err = db.Collection("tags").InsertMany(ctx, tags)
	assert.NoError(err, "failed to seed tags")

	segments := []any{
		&model.Segment{
			ID:          johnsSegmentID,
			Name:        "john-like names",
			ContentType: model.ContentTypeCustomer,
			Conditions: []model.Condition{
				{Field: "firstName", Operator: model.OperatorContains, Value: "john", Type: "string"},
			},
		},
		&model.Segment{
			ID:          companySegmentID,
			Name:        "big companies",
			ContentType: model.ContentTypeCompany,
			Conditions: []model.Condition{
				{Field: "size", Operator: model.OperatorGreaterThan, Value: "100", Type: "number"},
			},
		},
	}
	_, err = db.Collection("segments").InsertMany(ctx, segments)
	assert.NoError(err, "failed to seed segments")
}

func (s *handlersTestSuite) graphql(query string, variables map[string]any) *graphqlResponse {
	assert := s.Require()

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	assert.NoError(err, "failed to marshal graphql request")

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	s.app.ServeHTTP(rec, req)
	assert.Equal(http.StatusOK, rec.Code, "graphql endpoint must respond with 200")

	var res graphqlResponse
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res), "failed to unmarshal graphql response")
	return &res
}

func (s *handlersTestSuite) customers(res *graphqlResponse, field string) []*model.Customer {
	assert := s.Require()

	var customers []*model.Customer
	assert.NoError(json.Unmarshal(res.Data[field], &customers), "failed to unmarshal customers")
	return customers
}

func (s *handlersTestSuite) TestCustomersIDsFilter() {
	res := s.graphql(`query($ids: [String]) { customers(ids: $ids) { _id firstName tagIds } }`, map[string]any{
		"ids": []string{"c-1", "c-4", "c-nonexistent"},
	})

	s.T().Log("only existing ids must be returned")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")

		customers := s.customers(res, "customers")
		s.Assert().Len(customers, 2)
		for _, c := range customers {
			s.Assert().Contains([]string{"c-1", "c-4"}, c.ID)
		}
	}
}

func (s *handlersTestSuite) TestCustomersTagFilter() {
	res := s.graphql(`query($tag: String) { customers(tag: $tag) { _id tagIds } }`, map[string]any{
		"tag": goldTagID,
	})

	s.T().Log("tag was applied to 2 of 4 customers, exactly those must be returned")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")

		customers := s.customers(res, "customers")
		s.Assert().Len(customers, 2)
		for _, c := range customers {
			s.Assert().True(c.HasTag(goldTagID), "customer %s must carry the tag", c.ID)
		}
	}
}

func (s *handlersTestSuite) TestCustomersSegmentFilter() {
	res := s.graphql(`query($segment: String) { customers(segment: $segment) { _id firstName } }`, map[string]any{
		"segment": johnsSegmentID,
	})

	s.T().Log("every returned customer must satisfy segment conditions")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")

		customers := s.customers(res, "customers")
		s.Assert().Len(customers, 1)
		s.Assert().Equal("c-1", customers[0].ID)
	}
}

func (s *handlersTestSuite) TestCustomersUnknownSegment() {
	res := s.graphql(`query { customers(segment: "no-such-segment") { _id } }`, nil)

	s.T().Log("unknown segment must yield empty result, not error")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")
		s.Assert().Empty(s.customers(res, "customers"))
	}
}

func (s *handlersTestSuite) TestCustomersSearch() {
	res := s.graphql(`query { customers(searchValue: "PIERCE") { _id lastName } }`, nil)

	s.T().Log("search must be case-insensitive")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")

		customers := s.customers(res, "customers")
		s.Assert().Len(customers, 1)
		s.Assert().Equal("c-2", customers[0].ID)
	}
}

func (s *handlersTestSuite) TestCustomersMainPagination() {
	res := s.graphql(`query { customersMain(page: 1, perPage: 3) { list { _id } totalCount } }`, nil)

	s.T().Log("4 customers with page=1 perPage=3 must produce list of 3 and totalCount of 4")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")

		var main struct {
			List       []*model.Customer `json:"list"`
			TotalCount int64             `json:"totalCount"`
		}
		s.Require().NoError(json.Unmarshal(res.Data["customersMain"], &main))

		s.Assert().Len(main.List, 3)
		s.Assert().Equal(int64(4), main.TotalCount)
	}
}

func (s *handlersTestSuite) TestCustomerCounts() {
	res := s.graphql(`query($byFakeSegment: JSON) {
		customerCounts(byFakeSegment: $byFakeSegment) { bySegment byTag byFakeSegment }
	}`, map[string]any{
		"byFakeSegment": map[string]any{
			"contentType": "customer",
			"conditions": []map[string]any{
				{"field": "lastName", "operator": "c", "value": "walls", "type": "string"},
			},
		},
	})

	s.T().Log("counts must be scoped to customer segments and tags only")
	{
		s.Require().Empty(res.Errors, "no errors must be reported")

		var counts struct {
			BySegment     map[string]int64 `json:"bySegment"`
			ByTag         map[string]int64 `json:"byTag"`
			ByFakeSegment int64            `json:"byFakeSegment"`
		}
		s.Require().NoError(json.Unmarshal(res.Data["customerCounts"], &counts))

		s.Assert().Equal(int64(1), counts.BySegment[johnsSegmentID], "single john must match john-like segment")
		s.Assert().NotContains(counts.BySegment, companySegmentID, "company segment must not appear in customer counts")

		s.Assert().Equal(int64(2), counts.ByTag[goldTagID], "tag was applied to 2 customers")
		s.Assert().NotContains(counts.ByTag, partnerTagID, "company tag must not appear in customer counts")

		s.Assert().Equal(int64(1), counts.ByFakeSegment, "fake segment must be evaluated on the fly")
	}
}

func (s *handlersTestSuite) TestCustomerDetail() {
	query := `query($id: String!) { customerDetail(_id: $id) { _id firstName lastName email } }`

	s.T().Log("customer detail is returned by id")
	{
		res := s.graphql(query, map[string]any{"id": "c-1"})
		s.Require().Empty(res.Errors, "no errors must be reported")

		var c model.Customer
		s.Require().NoError(json.Unmarshal(res.Data["customerDetail"], &c))
		s.Assert().Equal("John", c.FirstName)
	}

	s.T().Log("repeated read is served from cache")
	{
		res := s.graphql(query, map[string]any{"id": "c-1"})
		s.Require().Empty(res.Errors, "no errors must be reported")

		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		cached, err := s.redisClient.Exists(ctx, "customer:c-1").Result()
		s.Require().NoError(err, "failed to check cache")
		s.Assert().Equal(int64(1), cached, "customer must be cached after first read")

		var c model.Customer
		s.Require().NoError(json.Unmarshal(res.Data["customerDetail"], &c))
		s.Assert().Equal("c-1", c.ID)
	}

	s.T().Log("missing customer resolves to null, not error")
	{
		res := s.graphql(query, map[string]any{"id": "no-such-customer"})
		s.Require().Empty(res.Errors, "no errors must be reported")
		s.Assert().Equal("null", string(res.Data["customerDetail"]))
	}
}

func (s *handlersTestSuite) TestUpdateCustomer() {
	detail := `query($id: String!) { customerDetail(_id: $id) { _id email } }`
	mutation := `mutation($id: String!, $email: String) { updateCustomer(_id: $id, email: $email) { _id email } }`

	s.T().Log("read customer first so it lands in cache")
	{
		res := s.graphql(detail, map[string]any{"id": "c-1"})
		s.Require().Empty(res.Errors, "no errors must be reported")

		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		cached, err := s.redisClient.Exists(ctx, "customer:c-1").Result()
		s.Require().NoError(err, "failed to check cache")
		s.Require().Equal(int64(1), cached, "customer must be cached after read")
	}

	s.T().Log("update evicts cached entry and persists new value")
	{
		res := s.graphql(mutation, map[string]any{"id": "c-1", "email": "john.updated@somemail.com"})
		s.Require().Empty(res.Errors, "no errors must be reported")

		var c model.Customer
		s.Require().NoError(json.Unmarshal(res.Data["updateCustomer"], &c))
		s.Assert().Equal("john.updated@somemail.com", c.Email)

		res = s.graphql(detail, map[string]any{"id": "c-1"})
		s.Require().Empty(res.Errors, "no errors must be reported")
		s.Require().NoError(json.Unmarshal(res.Data["customerDetail"], &c))
		s.Assert().Equal("john.updated@somemail.com", c.Email, "repeated read must not serve the stale cached value")
	}

	s.T().Log("update of missing customer resolves to null, not error")
	{
		res := s.graphql(mutation, map[string]any{"id": "no-such-customer", "email": "x@somemail.com"})
		s.Require().Empty(res.Errors, "no errors must be reported")
		s.Assert().Equal("null", string(res.Data["updateCustomer"]))
	}
}

func (s *handlersTestSuite) TestDeleteCustomer() {
	mutation := `mutation($id: String!) { deleteCustomer(_id: $id) }`
	detail := `query($id: String!) { customerDetail(_id: $id) { _id } }`

	s.T().Log("delete removes customer and its cached entry")
	{
		res := s.graphql(detail, map[string]any{"id": "c-2"})
		s.Require().Empty(res.Errors, "no errors must be reported")

		res = s.graphql(mutation, map[string]any{"id": "c-2"})
		s.Require().Empty(res.Errors, "no errors must be reported")
		s.Assert().Equal("true", string(res.Data["deleteCustomer"]))

		res = s.graphql(detail, map[string]any{"id": "c-2"})
		s.Require().Empty(res.Errors, "no errors must be reported")
		s.Assert().Equal("null", string(res.Data["customerDetail"]), "deleted customer must not be served from cache")
	}
}

func (s *handlersTestSuite) TestCreateBrand() {
	mutation := `mutation($code: String!, $name: String!, $emailConfig: JSON) {
		createBrand(code: $code, name: $name, emailConfig: $emailConfig) { _id code name createdAt emailConfig { type template } }
	}`

	s.T().Log("brand is created with stamped creation time and embedded email config")
	{
		res := s.graphql(mutation, map[string]any{
			"code": "shop",
			"name": "Shop",
			"emailConfig": map[string]any{
				"type":     "custom",
				"template": "<p>{{content}}</p>",
			},
		})
		s.Require().Empty(res.Errors, "no errors must be reported")

		var b model.Brand
		s.Require().NoError(json.Unmarshal(res.Data["createBrand"], &b))
		s.Assert().NotEmpty(b.ID, "id must be generated")
		s.Assert().False(b.CreatedAt.IsZero(), "createdAt must be stamped")
		s.Assert().Equal(model.EmailConfigTypeCustom, b.EmailConfig.Type)
	}

	s.T().Log("invalid email config type is rejected")
	{
		res := s.graphql(mutation, map[string]any{
			"code": "other",
			"name": "Other",
			"emailConfig": map[string]any{
				"type": "fancy",
			},
		})
		s.Assert().NotEmpty(res.Errors, "validation error must be reported")
	}

	s.T().Log("duplicate code is rejected")
	{
		res := s.graphql(mutation, map[string]any{"code": "shop", "name": "Shop Again"})
		s.Assert().NotEmpty(res.Errors, "business error must be reported")
	}
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(handlersTestSuite))
}
