package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/renovatepro/renovate-api/internal/core/authz"
	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

func seededOrder() *domain.Order {
	return &domain.Order{
		ID:          "o100",
		Owner:       "owner",
		Service:     "svc1",
		Designer:    "des",
		Workers:     []string{"w1", "w2"},
		Status:      domain.StatusPending,
		Description: "kitchen remodel",
		Budget:      1000,
		Address:     "Main St 1",
		ClientName:  "Olive",
		ClientPhone: "555",
	}
}

func newTestOrderService(orders ...*domain.Order) (*OrderService, *stubOrderRepo, *stubEventRepo) {
	repo := newStubOrderRepo(orders...)
	events := &stubEventRepo{}
	svc := NewOrderService(repo, events, newStubCatalogRepo("svc1", "svc2"), authz.OrderPolicy{}, discardLogger)
	return svc, repo, events
}

func validCreateInput() ports.CreateOrderInput {
	return ports.CreateOrderInput{
		Service:     "svc1",
		Description: "bathroom",
		Budget:      500,
		Address:     "Elm 2",
		ClientName:  "Uma",
		ClientPhone: "555-1",
	}
}

// ---------------------------------------------------------------------------
// CreateOrder
// ---------------------------------------------------------------------------

func TestOrderService_Create_Success(t *testing.T) {
	svc, _, events := newTestOrderService()

	o, err := svc.CreateOrder(context.Background(), sess("u1", domain.RoleUser), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Owner != "u1" {
		t.Errorf("expected owner u1, got %q", o.Owner)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %q", o.Status)
	}
	if o.Designer != "" || len(o.Workers) != 0 {
		t.Errorf("expected no assignees, got designer=%q workers=%v", o.Designer, o.Workers)
	}
	if len(events.events) != 1 || events.events[0].Action != domain.OrderCreated {
		t.Errorf("expected one created event, got %+v", events.events)
	}
}

func TestOrderService_Create_RoleGate(t *testing.T) {
	svc, _, _ := newTestOrderService()

	for _, role := range []string{domain.RoleDesigner, domain.RoleWorker} {
		_, err := svc.CreateOrder(context.Background(), sess("x", role), validCreateInput())
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", role, err)
		}
	}
	if _, err := svc.CreateOrder(context.Background(), nil, validCreateInput()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestOrderService_Create_MissingFields(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), sess("u1", domain.RoleUser), ports.CreateOrderInput{Service: "svc1", Budget: 10})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"description", "address", "client_name", "client_phone"}
	if fmt.Sprint(verr.Fields) != fmt.Sprint(want) {
		t.Errorf("fields: expected %v, got %v", want, verr.Fields)
	}
}

func TestOrderService_Create_UnknownService(t *testing.T) {
	svc, _, _ := newTestOrderService()

	in := validCreateInput()
	in.Service = "ghost"
	_, err := svc.CreateOrder(context.Background(), sess("u1", domain.RoleUser), in)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields[0] != "service" {
		t.Fatalf("expected service ValidationError, got %v", err)
	}
}

func TestOrderService_Create_OnBehalfOf(t *testing.T) {
	svc, _, _ := newTestOrderService()

	in := validCreateInput()
	in.Owner = "client9"

	if _, err := svc.CreateOrder(context.Background(), sess("u1", domain.RoleUser), in); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user: expected ErrForbidden, got %v", err)
	}

	o, err := svc.CreateOrder(context.Background(), sess("root", domain.RoleAdmin), in)
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if o.Owner != "client9" {
		t.Errorf("expected owner client9, got %q", o.Owner)
	}
}

func TestOrderService_Create_EmptyDesignerIsUnset(t *testing.T) {
	svc, _, _ := newTestOrderService()

	in := validCreateInput()
	in.Designer = "   "
	o, err := svc.CreateOrder(context.Background(), sess("u1", domain.RoleUser), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Designer != "" {
		t.Errorf("expected unset designer, got %q", o.Designer)
	}

	in.Designer = "des"
	o, _ = svc.CreateOrder(context.Background(), sess("u1", domain.RoleUser), in)
	if o.Designer != "des" {
		t.Errorf("owner should be able to pick a designer at creation, got %q", o.Designer)
	}
}

// ---------------------------------------------------------------------------
// GetOrder
// ---------------------------------------------------------------------------

func TestOrderService_Get_Relationships(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())

	for _, s := range []*domain.Session{
		sess("owner", domain.RoleUser),
		sess("des", domain.RoleDesigner),
		sess("w2", domain.RoleWorker),
		sess("root", domain.RoleAdmin),
	} {
		if _, err := svc.GetOrder(context.Background(), s, "o100"); err != nil {
			t.Errorf("%s: unexpected error %v", s.ID, err)
		}
	}

	if _, err := svc.GetOrder(context.Background(), sess("stranger", domain.RoleUser), "o100"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), sess("owner", domain.RoleUser), "nope"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateOrder
// ---------------------------------------------------------------------------

func TestOrderService_Update_OwnerWritesContentOnly(t *testing.T) {
	svc, repo, events := newTestOrderService(seededOrder())

	o, err := svc.UpdateOrder(context.Background(), sess("owner", domain.RoleUser), "o100", domain.OrderChanges{
		Budget:  ptr(1500.0),
		Status:  ptr(domain.StatusCompleted),
		Workers: &[]string{"w9"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Budget != 1500 {
		t.Errorf("expected budget 1500, got %v", o.Budget)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("status must be untouched, got %q", o.Status)
	}
	if len(o.Workers) != 2 {
		t.Errorf("workers must be untouched, got %v", o.Workers)
	}
	if repo.updates != 1 {
		t.Errorf("expected 1 write, got %d", repo.updates)
	}
	if len(events.events) != 1 || fmt.Sprint(events.events[0].Fields) != "[budget]" {
		t.Errorf("unexpected events: %+v", events.events)
	}
}

func TestOrderService_Update_OwnerLockedAfterPending(t *testing.T) {
	o := seededOrder()
	o.Status = domain.StatusInProgress
	svc, repo, _ := newTestOrderService(o)

	_, err := svc.UpdateOrder(context.Background(), sess("owner", domain.RoleUser), "o100", domain.OrderChanges{
		Description: ptr("changed"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updates != 0 {
		t.Errorf("rejected update must not write, got %d writes", repo.updates)
	}
}

func TestOrderService_Update_WorkerStatusOnly(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())

	o, err := svc.UpdateOrder(context.Background(), sess("w1", domain.RoleWorker), "o100", domain.OrderChanges{
		Status: ptr(domain.StatusInProgress),
		Budget: ptr(1.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != domain.StatusInProgress || o.Budget != 1000 {
		t.Errorf("expected status only, got status=%q budget=%v", o.Status, o.Budget)
	}
}

func TestOrderService_Update_WorkerIgnoresInvalidBudget(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())

	o, err := svc.UpdateOrder(context.Background(), sess("w1", domain.RoleWorker), "o100", domain.OrderChanges{
		Status: ptr(domain.StatusCompleted),
		Budget: ptr(0.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != domain.StatusCompleted || o.Budget != 1000 {
		t.Errorf("expected status completed and budget untouched, got status=%q budget=%v", o.Status, o.Budget)
	}
}

func TestOrderService_Update_NothingAllowedSkipsWrite(t *testing.T) {
	svc, repo, events := newTestOrderService(seededOrder())

	o, err := svc.UpdateOrder(context.Background(), sess("w1", domain.RoleWorker), "o100", domain.OrderChanges{
		Description: ptr("sneaky"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Description != "kitchen remodel" {
		t.Errorf("description changed: %q", o.Description)
	}
	if repo.updates != 0 || len(events.events) != 0 {
		t.Errorf("expected no write and no event, got %d writes %d events", repo.updates, len(events.events))
	}
}

func TestOrderService_Update_Unrelated(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())

	_, err := svc.UpdateOrder(context.Background(), sess("other", domain.RoleDesigner), "o100", domain.OrderChanges{
		Status: ptr(domain.StatusCompleted),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOrderService_Update_DesignerReassignment(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())

	_, err := svc.UpdateOrder(context.Background(), sess("des", domain.RoleDesigner), "o100", domain.OrderChanges{
		Designer: ptr("des2"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("designer: expected ErrForbidden, got %v", err)
	}

	o, err := svc.UpdateOrder(context.Background(), sess("root", domain.RoleAdmin), "o100", domain.OrderChanges{
		Designer: ptr("des2"),
	})
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if o.Designer != "des2" {
		t.Errorf("expected designer des2, got %q", o.Designer)
	}
}

func TestOrderService_Update_DesignerAssignsWorkers(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())

	o, err := svc.UpdateOrder(context.Background(), sess("des", domain.RoleDesigner), "o100", domain.OrderChanges{
		Workers: &[]string{"w3", " w3", "", "w4"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(o.Workers) != "[w3 w4]" {
		t.Errorf("expected de-duplicated workers [w3 w4], got %v", o.Workers)
	}
}

func TestOrderService_Update_InvalidValues(t *testing.T) {
	svc, _, _ := newTestOrderService(seededOrder())
	owner := sess("owner", domain.RoleUser)

	var verr *domain.ValidationError
	_, err := svc.UpdateOrder(context.Background(), owner, "o100", domain.OrderChanges{Budget: ptr(-5.0)})
	if !errors.As(err, &verr) {
		t.Errorf("negative budget: expected ValidationError, got %v", err)
	}
	_, err = svc.UpdateOrder(context.Background(), owner, "o100", domain.OrderChanges{Service: ptr("ghost")})
	if !errors.As(err, &verr) {
		t.Errorf("unknown service: expected ValidationError, got %v", err)
	}
	_, err = svc.UpdateOrder(context.Background(), sess("des", domain.RoleDesigner), "o100", domain.OrderChanges{
		Status: ptr(domain.OrderStatus("archived")),
	})
	if !errors.As(err, &verr) {
		t.Errorf("unknown status: expected ValidationError, got %v", err)
	}
}

func TestOrderService_Update_StrictTransitions(t *testing.T) {
	o := seededOrder()
	o.Status = domain.StatusCompleted
	repo := newStubOrderRepo(o)
	svc := NewOrderService(repo, nil, nil, authz.OrderPolicy{StrictTransitions: true}, discardLogger)

	_, err := svc.UpdateOrder(context.Background(), sess("des", domain.RoleDesigner), "o100", domain.OrderChanges{
		Status: ptr(domain.StatusPending),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_Update_EventFailureIsNonFatal(t *testing.T) {
	svc, _, events := newTestOrderService(seededOrder())
	events.err = errors.New("mongo unavailable")

	if _, err := svc.UpdateOrder(context.Background(), sess("des", domain.RoleDesigner), "o100", domain.OrderChanges{
		Status: ptr(domain.StatusInProgress),
	}); err != nil {
		t.Fatalf("expected success despite event failure, got %v", err)
	}
}

func TestOrderService_Update_StorageError(t *testing.T) {
	svc, repo, _ := newTestOrderService(seededOrder())
	repo.updateErr = errors.New("write conflict")

	_, err := svc.UpdateOrder(context.Background(), sess("root", domain.RoleAdmin), "o100", domain.OrderChanges{Budget: ptr(9.0)})
	if err == nil || errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteOrder
// ---------------------------------------------------------------------------

func TestOrderService_Delete(t *testing.T) {
	o := seededOrder()
	o.Status = domain.StatusCompleted
	svc, repo, events := newTestOrderService(o)

	for _, s := range []*domain.Session{sess("des", domain.RoleDesigner), sess("w1", domain.RoleWorker)} {
		if err := svc.DeleteOrder(context.Background(), s, "o100"); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", s.ID, err)
		}
	}

	if err := svc.DeleteOrder(context.Background(), sess("owner", domain.RoleUser), "o100"); err != nil {
		t.Fatalf("owner delete of a completed order: %v", err)
	}
	if _, ok := repo.orders["o100"]; ok {
		t.Error("order still stored")
	}
	if len(events.events) != 1 || events.events[0].Action != domain.OrderDeleted {
		t.Errorf("expected one deleted event, got %+v", events.events)
	}
	if err := svc.DeleteOrder(context.Background(), sess("root", domain.RoleAdmin), "o100"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListOrders
// ---------------------------------------------------------------------------

func listFixture() []*domain.Order {
	return []*domain.Order{
		{ID: "a", Owner: "u1", Designer: "d1", Workers: []string{"w1"}, Status: domain.StatusPending},
		{ID: "b", Owner: "u1", Designer: "d2", Workers: []string{"w2"}, Status: domain.StatusInProgress},
		{ID: "c", Owner: "u2", Designer: "d1", Workers: []string{"w1", "w2"}, Status: domain.StatusCompleted},
	}
}

func TestOrderService_List_Scope(t *testing.T) {
	svc, _, _ := newTestOrderService(listFixture()...)

	cases := []struct {
		s    *domain.Session
		want int64
	}{
		{sess("root", domain.RoleAdmin), 3},
		{sess("u1", domain.RoleUser), 2},
		{sess("d1", domain.RoleDesigner), 2},
		{sess("w2", domain.RoleWorker), 2},
		{sess("nobody", domain.RoleWorker), 0},
	}
	for _, tc := range cases {
		res, err := svc.ListOrders(context.Background(), tc.s, ports.ListOrdersInput{})
		if err != nil {
			t.Fatalf("%s: %v", tc.s.ID, err)
		}
		if res.Total != tc.want {
			t.Errorf("%s (%s): expected %d orders, got %d", tc.s.ID, tc.s.Role, tc.want, res.Total)
		}
	}
}

func TestOrderService_List_StatusFilter(t *testing.T) {
	svc, _, _ := newTestOrderService(listFixture()...)

	res, err := svc.ListOrders(context.Background(), sess("root", domain.RoleAdmin), ports.ListOrdersInput{Status: "completed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != "c" {
		t.Errorf("unexpected result: %+v", res)
	}

	_, err = svc.ListOrders(context.Background(), sess("root", domain.RoleAdmin), ports.ListOrdersInput{Status: "lost"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestOrderService_List_Pagination(t *testing.T) {
	svc, repo, _ := newTestOrderService(listFixture()...)
	admin := sess("root", domain.RoleAdmin)

	res, _ := svc.ListOrders(context.Background(), admin, ports.ListOrdersInput{})
	if res.Limit != 10 || res.Page != 1 {
		t.Errorf("expected default page 1 limit 10, got page %d limit %d", res.Page, res.Limit)
	}

	res, _ = svc.ListOrders(context.Background(), admin, ports.ListOrdersInput{PageRequest: ports.PageRequest{Limit: 999}})
	if res.Limit != 100 || repo.lastFilter.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", res.Limit)
	}

	res, _ = svc.ListOrders(context.Background(), admin, ports.ListOrdersInput{PageRequest: ports.PageRequest{Page: 2, Limit: 2}})
	if res.TotalPages != 2 || len(res.Items) != 1 || res.Total != 3 {
		t.Errorf("unexpected page: total_pages=%d items=%d total=%d", res.TotalPages, len(res.Items), res.Total)
	}
}

func TestOrderService_List_Unauthenticated(t *testing.T) {
	svc, _, _ := newTestOrderService()
	if _, err := svc.ListOrders(context.Background(), nil, ports.ListOrdersInput{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestOrderService_Update_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestOrderService(seededOrder())
	owner := sess("owner", domain.RoleUser)
	admin := sess("root", domain.RoleAdmin)
	designer := sess("des2", domain.RoleDesigner)

	o, err := svc.UpdateOrder(ctx, owner, "o100", domain.OrderChanges{Budget: ptr(1200.0)})
	if err != nil {
		t.Fatalf("owner edit while pending: %v", err)
	}
	if o.Budget != 1200 {
		t.Fatalf("expected budget 1200, got %v", o.Budget)
	}

	o, err = svc.UpdateOrder(ctx, admin, "o100", domain.OrderChanges{Status: ptr(domain.StatusInProgress)})
	if err != nil {
		t.Fatalf("admin status change: %v", err)
	}
	if o.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %q", o.Status)
	}

	if _, err := svc.UpdateOrder(ctx, owner, "o100", domain.OrderChanges{Budget: ptr(1300.0)}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("owner edit after pending: expected ErrForbidden, got %v", err)
	}

	o, err = svc.UpdateOrder(ctx, admin, "o100", domain.OrderChanges{Designer: ptr("des2")})
	if err != nil {
		t.Fatalf("admin reassignment: %v", err)
	}
	if o.Designer != "des2" {
		t.Fatalf("expected designer des2, got %q", o.Designer)
	}

	if _, err := svc.UpdateOrder(ctx, designer, "o100", domain.OrderChanges{Designer: ptr("des3")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("designer reassignment: expected ErrForbidden, got %v", err)
	}

	stored := repo.orders["o100"]
	if stored.Designer != "des2" || stored.Budget != 1200 || stored.Status != domain.StatusInProgress {
		t.Errorf("unexpected stored order: designer=%q budget=%v status=%q", stored.Designer, stored.Budget, stored.Status)
	}
	if repo.updates != 3 {
		t.Errorf("expected 3 writes, got %d", repo.updates)
	}
}
