package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestPatient() *Patient {
	return &Patient{
		FirstName:       "Jane",
		LastName:        "Doe",
		DateOfBirth:     time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:          "active",
		InsuranceActive: true,
		InsurancePlan:   PlanPremium,
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(NewRepoMem())

	p := newTestPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.LastName != "Doe" {
		t.Errorf("last_name = %q, want Doe", got.LastName)
	}
}

func TestService_Create_Defaults(t *testing.T) {
	svc := NewService(NewRepoMem())

	p := newTestPatient()
	p.Status = ""
	p.InsurancePlan = ""
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Status != "active" {
		t.Errorf("status = %q, want active", p.Status)
	}
	if p.InsurancePlan != PlanStandard {
		t.Errorf("insurance_plan = %q, want standard", p.InsurancePlan)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(NewRepoMem())

	tests := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"missing name", func(p *Patient) { p.FirstName = "" }},
		{"missing dob", func(p *Patient) { p.DateOfBirth = time.Time{} }},
		{"bad status", func(p *Patient) { p.Status = "archived" }},
		{"bad plan", func(p *Patient) { p.InsurancePlan = "platinum" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPatient()
			tt.mutate(p)
			if err := svc.Create(context.Background(), p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(NewRepoMem())

	p := newTestPatient()
	p.ID = uuid.New()
	err := svc.Update(context.Background(), p)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService(NewRepoMem())

	p := newTestPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestService_List_Filters(t *testing.T) {
	svc := NewService(NewRepoMem())

	seed := []*Patient{
		{FirstName: "Alice", LastName: "Anders", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Status: "active"},
		{FirstName: "Bob", LastName: "Brown", DateOfBirth: time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC), Status: "inactive"},
		{FirstName: "Carol", LastName: "Andersson", DateOfBirth: time.Date(1992, 1, 1, 0, 0, 0, 0, time.UTC), Status: "active"},
	}
	for _, p := range seed {
		if err := svc.Create(context.Background(), p); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), SearchFilter{Name: "anders"}, 20, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 matches for name filter, got total=%d len=%d", total, len(items))
	}
	// Ordered by last name.
	if items[0].LastName != "Anders" || items[1].LastName != "Andersson" {
		t.Errorf("unexpected order: %s, %s", items[0].LastName, items[1].LastName)
	}

	_, total, err = svc.List(context.Background(), SearchFilter{Status: "inactive"}, 20, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 inactive patient, got %d", total)
	}
}

func TestService_List_Pagination(t *testing.T) {
	svc := NewService(NewRepoMem())
	for i := 0; i < 5; i++ {
		p := newTestPatient()
		p.LastName = string(rune('A' + i))
		if err := svc.Create(context.Background(), p); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), SearchFilter{}, 2, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(items) != 2 {
		t.Errorf("page size = %d, want 2", len(items))
	}
	if items[0].LastName != "C" {
		t.Errorf("expected page to start at C, got %s", items[0].LastName)
	}

	items, _, err = svc.List(context.Background(), SearchFilter{}, 2, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty page past end, got %d items", len(items))
	}
}
