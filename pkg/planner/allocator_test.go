package planner

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/workload"
)

type fakeSource struct {
	employees   []model.Employee
	projects    []model.Project
	assignments []model.Assignment
}

func (f *fakeSource) ListAssignments(_ context.Context, filter workload.AssignmentFilter) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ProjectID != nil && a.ProjectID != *filter.ProjectID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeSource) ListEmployees(_ context.Context, _ workload.EmployeeFilter) ([]model.Employee, error) {
	return f.employees, nil
}

func (f *fakeSource) ListProjects(_ context.Context) ([]model.Project, error) {
	return f.projects, nil
}

func (f *fakeSource) GetEmployee(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID == id {
			employee := f.employees[i]
			return &employee, nil
		}
	}
	return nil, model.ErrEmployeeNotFound
}

func (f *fakeSource) GetProject(_ context.Context, id uuid.UUID) (*model.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			project := f.projects[i]
			return &project, nil
		}
	}
	return nil, model.ErrProjectNotFound
}

func (f *fakeSource) PersistEmployeeLoad(_ context.Context, _ uuid.UUID, _ int) error { return nil }
func (f *fakeSource) PersistProjectHours(_ context.Context, _ uuid.UUID, _ int) error { return nil }

func (f *fakeSource) addEmployee(name string, maxHours, assignedHours int, projectID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.employees = append(f.employees, model.Employee{
		ID:             id,
		Name:           name,
		Department:     "platform",
		Team:           "core",
		Role:           "engineer",
		MaxWeeklyHours: maxHours,
	})
	if assignedHours > 0 {
		f.assignments = append(f.assignments, model.Assignment{
			ID:           uuid.New(),
			EmployeeID:   id,
			ProjectID:    projectID,
			HoursPerWeek: assignedHours,
			StartDate:    model.NewDate(2026, time.January, 1),
		})
	}
	return id
}

func TestSuggestAssignmentsOrdersByUtilization(t *testing.T) {
	src := &fakeSource{}
	projectID := uuid.New()
	src.projects = append(src.projects, model.Project{ID: projectID, Name: "migration", RequiredHours: 90})

	busyProject := uuid.New()
	src.addEmployee("Alice", 40, 30, busyProject) // 75% utilized, 10h free
	src.addEmployee("Bob", 40, 0, busyProject)    // idle, 40h free
	src.addEmployee("Carol", 40, 20, busyProject) // 50% utilized, 20h free

	allocator := NewAllocator(src)
	plan, err := allocator.SuggestAssignments(context.Background(), projectID, 90)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}

	wantNames := []string{"Bob", "Carol", "Alice"}
	wantHours := []int{40, 20, 10}
	if len(plan.Suggestions) != len(wantNames) {
		t.Fatalf("got %d suggestions, want %d", len(plan.Suggestions), len(wantNames))
	}
	for i, suggestion := range plan.Suggestions {
		if suggestion.Employee.Name != wantNames[i] {
			t.Errorf("suggestion[%d] = %s, want %s", i, suggestion.Employee.Name, wantNames[i])
		}
		if suggestion.SuggestedHours != wantHours[i] {
			t.Errorf("suggestion[%d] hours = %d, want %d", i, suggestion.SuggestedHours, wantHours[i])
		}
	}
	if plan.RemainingHours != 20 {
		t.Errorf("RemainingHours = %d, want 20", plan.RemainingHours)
	}
}

func TestSuggestAssignmentsPartialCoverage(t *testing.T) {
	src := &fakeSource{}
	projectID := uuid.New()
	src.projects = append(src.projects, model.Project{ID: projectID, Name: "launch", RequiredHours: 100})

	// Ascending utilization yields available hours of 10, 50, 20; the 50 gets
	// capped at 40 and 30 hours stay uncovered.
	src.addEmployee("Small", 10, 0, uuid.New())
	src.addEmployee("Large", 50, 0, uuid.New())
	busyProject := uuid.New()
	src.addEmployee("Busy", 40, 20, busyProject)

	allocator := NewAllocator(src)
	plan, err := allocator.SuggestAssignments(context.Background(), projectID, 100)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}

	wantHours := []int{10, 40, 20}
	if len(plan.Suggestions) != len(wantHours) {
		t.Fatalf("got %d suggestions, want %d", len(plan.Suggestions), len(wantHours))
	}
	for i, suggestion := range plan.Suggestions {
		if suggestion.SuggestedHours != wantHours[i] {
			t.Errorf("suggestion[%d] hours = %d, want %d", i, suggestion.SuggestedHours, wantHours[i])
		}
		if suggestion.SuggestedHours > suggestion.AvailableHours {
			t.Errorf("suggestion[%d] exceeds available hours", i)
		}
	}
	if plan.RemainingHours != 30 {
		t.Errorf("RemainingHours = %d, want 30", plan.RemainingHours)
	}
}

func TestSuggestAssignmentsSkipsFullEmployees(t *testing.T) {
	src := &fakeSource{}
	projectID := uuid.New()
	src.projects = append(src.projects, model.Project{ID: projectID, Name: "migration", RequiredHours: 10})

	busyProject := uuid.New()
	src.addEmployee("Maxed", 40, 40, busyProject)
	src.addEmployee("Over", 40, 50, busyProject)
	src.addEmployee("Free", 40, 0, busyProject)

	allocator := NewAllocator(src)
	plan, err := allocator.SuggestAssignments(context.Background(), projectID, 10)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}

	if len(plan.Suggestions) != 1 || plan.Suggestions[0].Employee.Name != "Free" {
		t.Fatalf("expected only the free employee, got %+v", plan.Suggestions)
	}
	if plan.RemainingHours != 0 {
		t.Errorf("RemainingHours = %d, want 0", plan.RemainingHours)
	}
}

func TestSuggestAssignmentsCapsSingleSuggestion(t *testing.T) {
	src := &fakeSource{}
	projectID := uuid.New()
	src.projects = append(src.projects, model.Project{ID: projectID, Name: "big", RequiredHours: 100})
	src.addEmployee("Titan", 80, 0, uuid.New())

	allocator := NewAllocator(src)
	plan, err := allocator.SuggestAssignments(context.Background(), projectID, 100)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}

	if len(plan.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(plan.Suggestions))
	}
	if plan.Suggestions[0].SuggestedHours != PerAssignmentCap {
		t.Errorf("SuggestedHours = %d, want %d", plan.Suggestions[0].SuggestedHours, PerAssignmentCap)
	}
	if plan.RemainingHours != 60 {
		t.Errorf("RemainingHours = %d, want 60", plan.RemainingHours)
	}
}

func TestSuggestAssignmentsDeterministic(t *testing.T) {
	src := &fakeSource{}
	projectID := uuid.New()
	src.projects = append(src.projects, model.Project{ID: projectID, Name: "migration", RequiredHours: 60})

	busyProject := uuid.New()
	// Identical utilization; repository order breaks the tie.
	src.addEmployee("First", 40, 20, busyProject)
	src.addEmployee("Second", 40, 20, busyProject)

	allocator := NewAllocator(src)
	ctx := context.Background()

	first, err := allocator.SuggestAssignments(ctx, projectID, 60)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}
	second, err := allocator.SuggestAssignments(ctx, projectID, 60)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs on an unchanged snapshot must return identical plans")
	}
	if first.Suggestions[0].Employee.Name != "First" {
		t.Errorf("tie broken as %s, want repository order", first.Suggestions[0].Employee.Name)
	}
}

func TestSuggestAssignmentsUnknownProject(t *testing.T) {
	allocator := NewAllocator(&fakeSource{})
	_, err := allocator.SuggestAssignments(context.Background(), uuid.New(), 10)
	if !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("SuggestAssignments() error = %v, want ErrProjectNotFound", err)
	}
}

func TestSuggestAssignmentsZeroRequired(t *testing.T) {
	src := &fakeSource{}
	projectID := uuid.New()
	src.projects = append(src.projects, model.Project{ID: projectID, Name: "done", RequiredHours: 0})
	src.addEmployee("Idle", 40, 0, uuid.New())

	allocator := NewAllocator(src)
	plan, err := allocator.SuggestAssignments(context.Background(), projectID, 0)
	if err != nil {
		t.Fatalf("SuggestAssignments() error = %v", err)
	}
	if len(plan.Suggestions) != 0 || plan.RemainingHours != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}
