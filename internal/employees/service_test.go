package employees

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

type mockRepo struct {
	byID   map[int64]Employee
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: map[int64]Employee{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context) ([]Employee, error) {
	out := make([]Employee, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return Employee{}, shared.ErrNotFound
	}
	return e, nil
}

func (m *mockRepo) Create(ctx context.Context, e Employee) (Employee, error) {
	for _, existing := range m.byID {
		if existing.Email == e.Email {
			return Employee{}, shared.ErrConflict
		}
	}
	e.ID = m.nextID
	m.nextID++
	m.byID[e.ID] = e
	return e, nil
}

func (m *mockRepo) Update(ctx context.Context, e Employee) error {
	if _, ok := m.byID[e.ID]; !ok {
		return shared.ErrNotFound
	}
	m.byID[e.ID] = e
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func TestCreateNormalizesEmail(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, shared.NopRecorder{})

	created, err := svc.Create(context.Background(), "admin", CreateEmployeeRequest{
		Name:  "Jordan Mills",
		Email: "  Jordan.Mills@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "jordan.mills@example.com", created.Email)
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, shared.NopRecorder{})

	_, err := svc.Create(context.Background(), "admin", CreateEmployeeRequest{Name: "Jordan", Email: "j@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "admin", CreateEmployeeRequest{Name: "Jamie", Email: "J@example.com"})
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestUpdateKeepsEmailAndUnsetFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, shared.NopRecorder{})

	created, err := svc.Create(context.Background(), "admin", CreateEmployeeRequest{
		Name:       "Jordan",
		Email:      "j@example.com",
		Department: "Finance",
		Salary:     50000,
	})
	require.NoError(t, err)

	dept := "Engineering"
	updated, err := svc.Update(context.Background(), "admin", created.ID, UpdateEmployeeRequest{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Department)
	assert.Equal(t, "j@example.com", updated.Email)
	assert.Equal(t, "Jordan", updated.Name)
	assert.Equal(t, float64(50000), updated.Salary)
}

func TestUpdateMissingEmployee(t *testing.T) {
	svc := NewService(newMockRepo(), shared.NopRecorder{})

	name := "Nobody"
	_, err := svc.Update(context.Background(), "admin", 42, UpdateEmployeeRequest{Name: &name})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDeleteIdempotent(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, shared.NopRecorder{})

	created, err := svc.Create(context.Background(), "admin", CreateEmployeeRequest{Name: "Jordan", Email: "j@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "admin", created.ID))
	require.NoError(t, svc.Delete(context.Background(), "admin", created.ID))
}
