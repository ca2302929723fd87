package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateByID(_ context.Context, id string, c domain.UserChanges) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if c.Name != nil {
		u.Name = *c.Name
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Role != nil {
		u.Role = *c.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(u.Name+" "+u.Email, f.Search) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, f.PageRequest), total, nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders     map[string]*domain.Order
	nextID     int
	updates    int
	lastFilter ports.ListOrdersFilter
	updateErr  error
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		clone := *o
		r.orders[o.ID] = &clone
	}
	return r
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("o%d", r.nextID)
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) UpdateByID(_ context.Context, id string, c domain.OrderChanges) (*domain.Order, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	r.updates++
	c.ApplyTo(o)
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// List applies the same scope the real Mongo query uses.
func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	r.lastFilter = f
	var out []*domain.Order
	for _, o := range r.orders {
		if !f.Scope.Matches(o) {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, f.PageRequest), total, nil
}

type stubEventRepo struct {
	events []*domain.OrderEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.OrderEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type stubCatalogRepo struct {
	services map[string]*domain.Service
	nextID   int
}

func newStubCatalogRepo(ids ...string) *stubCatalogRepo {
	r := &stubCatalogRepo{services: make(map[string]*domain.Service)}
	for _, id := range ids {
		r.services[id] = &domain.Service{ID: id, Name: id, Description: id, Category: "general"}
	}
	return r
}

func (r *stubCatalogRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	r.nextID++
	clone := *s
	clone.ID = fmt.Sprintf("s%d", r.nextID)
	r.services[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubCatalogRepo) UpdateByID(_ context.Context, id string, c domain.ServiceChanges) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	if c.Name != nil {
		s.Name = *c.Name
	}
	if c.Description != nil {
		s.Description = *c.Description
	}
	if c.Price != nil {
		s.Price = *c.Price
	}
	if c.Category != nil {
		s.Category = *c.Category
	}
	clone := *s
	return &clone, nil
}

func (r *stubCatalogRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *stubCatalogRepo) List(_ context.Context, f ports.ListServicesFilter) ([]*domain.Service, int64, error) {
	var out []*domain.Service
	for _, s := range r.services {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, f.PageRequest), total, nil
}

// ---------------------------------------------------------------------------
// Portfolio
// ---------------------------------------------------------------------------

type stubPortfolioRepo struct {
	items      map[string]*domain.PortfolioItem
	nextID     int
	lastFilter ports.ListPortfolioFilter
}

func newStubPortfolioRepo(items ...*domain.PortfolioItem) *stubPortfolioRepo {
	r := &stubPortfolioRepo{items: make(map[string]*domain.PortfolioItem)}
	for _, it := range items {
		clone := *it
		r.items[it.ID] = &clone
	}
	return r
}

func (r *stubPortfolioRepo) Create(_ context.Context, it *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	r.nextID++
	clone := *it
	clone.ID = fmt.Sprintf("p%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPortfolioRepo) FindByID(_ context.Context, id string) (*domain.PortfolioItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPortfolioItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubPortfolioRepo) UpdateByID(_ context.Context, id string, c domain.PortfolioChanges) (*domain.PortfolioItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPortfolioItemNotFound
	}
	if c.Title != nil {
		it.Title = *c.Title
	}
	if c.Description != nil {
		it.Description = *c.Description
	}
	if c.ImageURL != nil {
		it.ImageURL = *c.ImageURL
	}
	if c.Category != nil {
		it.Category = *c.Category
	}
	clone := *it
	return &clone, nil
}

func (r *stubPortfolioRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrPortfolioItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubPortfolioRepo) List(_ context.Context, f ports.ListPortfolioFilter) ([]*domain.PortfolioItem, int64, error) {
	r.lastFilter = f
	var out []*domain.PortfolioItem
	for _, it := range r.items {
		if f.Owner != "" && it.Owner != f.Owner {
			continue
		}
		clone := *it
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, f.PageRequest), total, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

func paginate[T any](items []*T, p ports.PageRequest) []*T {
	if p.Limit <= 0 {
		return items
	}
	skip := (p.Page - 1) * p.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(items) {
		return []*T{}
	}
	end := skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func sess(id, role string) *domain.Session {
	return &domain.Session{ID: id, Email: id + "@example.com", Role: role}
}

func ptr[T any](v T) *T { return &v }
