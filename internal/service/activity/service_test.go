package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/activity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityRepo struct {
	rows   map[string]*activity.Activity
	nextID int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{rows: make(map[string]*activity.Activity)}
}

func (r *fakeActivityRepo) Create(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	r.nextID++
	act.ID = fmt.Sprintf("act-%d", r.nextID)
	r.rows[act.ID] = &act
	return act, nil
}

func (r *fakeActivityRepo) GetByID(ctx context.Context, id string) (activity.Activity, error) {
	act, ok := r.rows[id]
	if !ok {
		return activity.Activity{}, activity.ErrActivityNotFound
	}
	return *act, nil
}

func (r *fakeActivityRepo) Update(ctx context.Context, act activity.Activity) error {
	stored, ok := r.rows[act.ID]
	if !ok {
		return activity.ErrActivityNotFound
	}
	*stored = act
	return nil
}

func (r *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return activity.ErrActivityNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeActivityRepo) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]activity.Activity, error) {
	var out []activity.Activity
	for _, act := range r.rows {
		if act.EmployeeID != employeeID {
			continue
		}
		if dr.Start != nil && act.ActivityDatetime.Before(*dr.Start) {
			continue
		}
		if dr.End != nil && act.ActivityDatetime.After(dr.End.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, *act)
	}
	return out, nil
}

func (r *fakeActivityRepo) ListAll(ctx context.Context, date *time.Time) ([]activity.Activity, error) {
	var out []activity.Activity
	for _, act := range r.rows {
		if date != nil && !act.ActivityDatetime.Truncate(24*time.Hour).Equal(date.Truncate(24*time.Hour)) {
			continue
		}
		out = append(out, *act)
	}
	return out, nil
}

type fakeEmployeeService struct {
	employees map[string]employee.Employee
}

func (s *fakeEmployeeService) Create(ctx context.Context, actor identity.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (s *fakeEmployeeService) List(ctx context.Context, actor identity.Actor) ([]employee.EmployeeResponse, error) {
	return nil, nil
}

func (s *fakeEmployeeService) Get(ctx context.Context, actor identity.Actor, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (s *fakeEmployeeService) Update(ctx context.Context, actor identity.Actor, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (s *fakeEmployeeService) Delete(ctx context.Context, actor identity.Actor, id string) error {
	return nil
}

func (s *fakeEmployeeService) RequireActive(ctx context.Context, empID string) (employee.Employee, error) {
	emp, ok := s.employees[empID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

var (
	empActor   = identity.Actor{ID: "emp-1", Role: identity.RoleEmployee}
	otherActor = identity.Actor{ID: "emp-2", Role: identity.RoleEmployee}
	adminActor = identity.Actor{ID: "admin-1", Role: identity.RoleAdmin}
)

func newTestService(t *testing.T) (activity.ActivityService, *fakeActivityRepo) {
	t.Helper()

	repo := newFakeActivityRepo()
	empSvc := &fakeEmployeeService{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", IsActive: true},
		"emp-2": {ID: "emp-2", IsActive: true},
	}}
	return NewActivityService(nil, repo, empSvc), repo
}

func validSubmit() activity.SubmitActivityRequest {
	return activity.SubmitActivityRequest{
		CustomerName: "PT Maju",
		Remarks:      "quarterly stock check",
	}
}

func TestActivityService_Submit_Success(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", result.EmployeeID)
	assert.Equal(t, "PT Maju", result.CustomerName)
	assert.NotEmpty(t, result.ActivityDatetime)
}

func TestActivityService_Submit_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), empActor, activity.SubmitActivityRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "customer_name")
	assert.Contains(t, details, "remarks")
}

func TestActivityService_Edit_Owner(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)

	newName := "PT Mundur"
	result, err := svc.Edit(context.Background(), empActor, activity.EditActivityRequest{
		ID:           created.ID,
		CustomerName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "PT Mundur", result.CustomerName)
	assert.Equal(t, "quarterly stock check", result.Remarks)
}

func TestActivityService_Edit_NotOwner(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)

	newName := "PT Lain"
	_, err = svc.Edit(context.Background(), otherActor, activity.EditActivityRequest{
		ID:           created.ID,
		CustomerName: &newName,
	})
	assert.ErrorIs(t, err, activity.ErrNotOwner)
}

func TestActivityService_Delete_Owner(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), empActor, created.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)
}

func TestActivityService_Delete_NotOwner(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), otherActor, created.ID)
	assert.ErrorIs(t, err, activity.ErrNotOwner)
}

func TestActivityService_Delete_AdminAny(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), adminActor, created.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)
}

func TestActivityService_ListMine_ScopedToActor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), otherActor, validSubmit())
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), empActor, "", "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "emp-1", mine[0].EmployeeID)
}

func TestActivityService_Reports_NonAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Reports(context.Background(), empActor, nil)
	assert.ErrorIs(t, err, identity.ErrAdminRequired)
}

func TestActivityService_Reports_AllEntries(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), empActor, validSubmit())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), otherActor, validSubmit())
	require.NoError(t, err)

	all, err := svc.Reports(context.Background(), adminActor, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
