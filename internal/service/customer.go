package service

import (
	"context"

	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

const defaultPerPage = 20

// CustomerFilter is a set of list filters accepted by customer queries
type CustomerFilter struct {
	Page        int64
	PerPage     int64
	SegmentID   string
	TagID       string
	IDs         []string
	SearchValue string
}

// CustomerList is paginated customers envelope
type CustomerList struct {
	List       []*model.Customer
	TotalCount int64
}

// FakeSegment is an unpersisted condition set evaluated once for counting
type FakeSegment struct {
	ContentType string            `json:"contentType"`
	Conditions  []model.Condition `json:"conditions"`
}

// CustomerCounts is grouped customer counts per segment and per tag
type CustomerCounts struct {
	BySegment     map[string]int64
	ByTag         map[string]int64
	ByFakeSegment int64
}

// CustomerService exposes customer operations
type CustomerService interface {
	FindAll(ctx context.Context, f CustomerFilter) ([]*model.Customer, error)
	FindPage(ctx context.Context, f CustomerFilter) (*CustomerList, error)
	Counts(ctx context.Context, f CustomerFilter, fake *FakeSegment) (*CustomerCounts, error)
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)
	DeleteByID(ctx context.Context, id string) error
}

type customerService struct {
	customerRps   repository.CustomerRepository
	segmentRps    repository.SegmentRepository
	tagRps        repository.TagRepository
	customerCache cache.CustomerCacheRepository
}

// NewCustomerService builds customer service
func NewCustomerService(
	customerRps repository.CustomerRepository,
	segmentRps repository.SegmentRepository,
	tagRps repository.TagRepository,
	customerCache cache.CustomerCacheRepository,
) CustomerService {
	return &customerService{
		customerRps:   customerRps,
		segmentRps:    segmentRps,
		tagRps:        tagRps,
		customerCache: customerCache,
	}
}

func (s *customerService) FindAll(ctx context.Context, f CustomerFilter) ([]*model.Customer, error) {
	q, ok, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*model.Customer{}, nil
	}
	return s.customerRps.FindAll(ctx, q)
}

func (s *customerService) FindPage(ctx context.Context, f CustomerFilter) (*CustomerList, error) {
	q, ok, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &CustomerList{List: []*model.Customer{}}, nil
	}

	// total count reflects the filtered set before pagination
	unpaged := q
	unpaged.Skip = 0
	unpaged.Limit = 0

	total, err := s.customerRps.Count(ctx, unpaged)
	if err != nil {
		return nil, err
	}

	list, err := s.customerRps.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}

	return &CustomerList{List: list, TotalCount: total}, nil
}

// Counts aggregates customer counts grouped by segment, by tag and for an
// optional fake segment. Each group replaces its own dimension of the base
// filter: per-segment counts ignore the segment argument and per-tag counts
// ignore the tag argument, while the remaining filters still apply.
func (s *customerService) Counts(ctx context.Context, f CustomerFilter, fake *FakeSegment) (*CustomerCounts, error) {
	counts := &CustomerCounts{
		BySegment: make(map[string]int64),
		ByTag:     make(map[string]int64),
	}

	base, ok, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		return counts, nil
	}
	base.Skip = 0
	base.Limit = 0

	segments, err := s.segmentRps.FindAllByContentType(ctx, model.ContentTypeCustomer)
	if err != nil {
		return nil, err
	}

	for _, seg := range segments {
		q := base
		q.Segment = seg

		n, err := s.customerRps.Count(ctx, q)
		if err != nil {
			return nil, err
		}
		counts.BySegment[seg.ID] = n
	}

	tags, err := s.tagRps.FindAllByType(ctx, model.TagTypeCustomer)
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		q := base
		q.TagID = tag.ID

		n, err := s.customerRps.Count(ctx, q)
		if err != nil {
			return nil, err
		}
		counts.ByTag[tag.ID] = n
	}

	if fake != nil {
		q := base
		q.Segment = &model.Segment{ContentType: fake.ContentType, Conditions: fake.Conditions}

		n, err := s.customerRps.Count(ctx, q)
		if err != nil {
			return nil, err
		}
		counts.ByFakeSegment = n
	}

	return counts, nil
}

func (s *customerService) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	c, err = s.customerRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	if err := s.customerCache.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces customer document, evicting the cached entry first so a
// concurrent read cannot re-cache the stale version after the write
func (s *customerService) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	existing, err := s.customerRps.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if err := s.customerCache.DeleteByID(ctx, c.ID); err != nil {
		return nil, err
	}

	if err := s.customerRps.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id string) error {
	if err := s.customerCache.DeleteByID(ctx, id); err != nil {
		return err
	}
	return s.customerRps.DeleteByID(ctx, id)
}

// query merges filters to single repository query. Returned flag is false when
// filter references a segment which doesn't exist - such query must resolve to
// empty result set, not to error
func (s *customerService) query(ctx context.Context, f CustomerFilter) (repository.CustomerQuery, bool, error) {
	q := repository.CustomerQuery{
		IDs:         f.IDs,
		TagID:       f.TagID,
		SearchValue: f.SearchValue,
	}

	if f.SegmentID != "" {
		seg, err := s.segmentRps.FindByID(ctx, f.SegmentID)
		if err != nil {
			return q, false, err
		}
		if seg == nil {
			return q, false, nil
		}
		q.Segment = seg
	}

	if f.Page > 0 {
		perPage := f.PerPage
		if perPage <= 0 {
			perPage = defaultPerPage
		}
		q.Skip = (f.Page - 1) * perPage
		q.Limit = perPage
	} else if f.PerPage > 0 {
		q.Limit = f.PerPage
	}

	return q, true, nil
}
