package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sathira/codewizard/internal/apperror"
	"github.com/sathira/codewizard/internal/model"
)

// mockProblemRepo is an in-memory repository.ProblemRepository that keeps
// insertion order, so creation-order guarantees can be asserted.
type mockProblemRepo struct {
	problems []*model.Problem
	nextID   int
	failWith error
}

func newMockProblemRepo() *mockProblemRepo {
	return &mockProblemRepo{}
}

func (m *mockProblemRepo) Create(_ context.Context, p *model.Problem) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	p.ID = fmt.Sprintf("mock-%d", m.nextID)
	stored := *p
	m.problems = append(m.problems, &stored)
	return nil
}

func (m *mockProblemRepo) GetByID(_ context.Context, id string) (*model.Problem, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, p := range m.problems {
		if p.ID == id {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("problem", id)
}

func (m *mockProblemRepo) List(_ context.Context) ([]model.Problem, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make([]model.Problem, 0, len(m.problems))
	for _, p := range m.problems {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProblemRepo) ListByOwner(_ context.Context, email string) ([]model.Problem, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.Problem{}
	for _, p := range m.problems {
		if p.OwnerEmail == email {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProblemRepo) Update(_ context.Context, p *model.Problem) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i, existing := range m.problems {
		if existing.ID == p.ID {
			stored := *p
			m.problems[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("problem", p.ID)
}

func (m *mockProblemRepo) Delete(_ context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i, p := range m.problems {
		if p.ID == id {
			m.problems = append(m.problems[:i], m.problems[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("problem", id)
}

func TestProblemCreate(t *testing.T) {
	repo := newMockProblemRepo()
	svc := NewProblemService(repo, testLogger())

	p, err := svc.Create(context.Background(), "  How to exit vim  ", "asking for a friend", "a@b.c")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Title != "How to exit vim" {
		t.Errorf("Title = %q, want trimmed", p.Title)
	}
	if p.ID == "" {
		t.Error("Create() returned a problem without an id")
	}
}

func TestProblemCreate_Validation(t *testing.T) {
	svc := NewProblemService(newMockProblemRepo(), testLogger())

	tests := []struct {
		name                      string
		title, description, email string
	}{
		{"empty title", "", "d", "a@b.c"},
		{"whitespace title", "   ", "d", "a@b.c"},
		{"empty email", "t", "d", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.title, tt.description, tt.email)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestProblemListByOwner_EmptyIsNotFound(t *testing.T) {
	repo := newMockProblemRepo()
	svc := NewProblemService(repo, testLogger())

	// An owner with zero problems gets NotFound, not an empty list. The
	// conflation is inherited behavior that clients rely on.
	_, err := svc.ListByOwner(context.Background(), "lurker@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("ListByOwner() error = %v, want ErrNotFound", err)
	}

	if _, err := svc.Create(context.Background(), "t", "d", "lurker@example.com"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.ListByOwner(context.Background(), "lurker@example.com")
	if err != nil {
		t.Fatalf("ListByOwner() after create error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListByOwner() returned %d problems, want 1", len(got))
	}
}

func TestProblemUpdate_NoOwnershipCheck(t *testing.T) {
	repo := newMockProblemRepo()
	svc := NewProblemService(repo, testLogger())

	p, err := svc.Create(context.Background(), "original", "d", "owner@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Update carries no caller identity at all: any authenticated caller
	// can rewrite any problem. Pinned on purpose.
	updated, err := svc.Update(context.Background(), p.ID, "hijacked", "rewritten")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "hijacked" {
		t.Errorf("Title = %q, want %q", updated.Title, "hijacked")
	}
	if updated.OwnerEmail != "owner@example.com" {
		t.Errorf("OwnerEmail changed to %q", updated.OwnerEmail)
	}
}

func TestProblemService_StoreDown(t *testing.T) {
	repo := newMockProblemRepo()
	svc := NewProblemService(repo, testLogger())

	p, err := svc.Create(context.Background(), "t", "d", "a@b.c")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	repo.failWith = apperror.Unavailable(errors.New("database is locked"))

	if _, err := svc.Create(context.Background(), "t2", "d", "a@b.c"); !errors.Is(err, apperror.ErrUnavailable) {
		t.Errorf("Create() with store down error = %v, want ErrUnavailable", err)
	}
	if _, err := svc.ListAll(context.Background()); !errors.Is(err, apperror.ErrUnavailable) {
		t.Errorf("ListAll() with store down error = %v, want ErrUnavailable", err)
	}
	if _, err := svc.ListByOwner(context.Background(), "a@b.c"); !errors.Is(err, apperror.ErrUnavailable) {
		t.Errorf("ListByOwner() with store down error = %v, want ErrUnavailable", err)
	}
	if _, err := svc.Update(context.Background(), p.ID, "t", "d"); !errors.Is(err, apperror.ErrUnavailable) {
		t.Errorf("Update() with store down error = %v, want ErrUnavailable", err)
	}
	if err := svc.Delete(context.Background(), p.ID); !errors.Is(err, apperror.ErrUnavailable) {
		t.Errorf("Delete() with store down error = %v, want ErrUnavailable", err)
	}
}

func TestProblemUpdate_NotFound(t *testing.T) {
	svc := NewProblemService(newMockProblemRepo(), testLogger())

	_, err := svc.Update(context.Background(), "missing", "t", "d")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestProblemDelete(t *testing.T) {
	repo := newMockProblemRepo()
	svc := NewProblemService(repo, testLogger())

	p, err := svc.Create(context.Background(), "doomed", "d", "a@b.c")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ListAll() after delete = %d problems, want 0", len(all))
	}

	if err := svc.Delete(context.Background(), p.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
