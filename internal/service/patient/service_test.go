package patient

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalcare/clinic-api/internal/model"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *model.Patient) error {
	copied := *p
	m.patients[p.ID] = &copied
	return nil
}

func (m *mockPatientRepo) Get(_ context.Context, userID, id uuid.UUID) (*model.Patient, error) {
	p, ok := m.patients[id]
	if !ok || p.UserID != userID {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	copied := *p
	return &copied, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *model.Patient) (*model.Patient, error) {
	existing, ok := m.patients[p.ID]
	if !ok || existing.UserID != p.UserID {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	copied := *p
	m.patients[p.ID] = &copied
	result := copied
	return &result, nil
}

func (m *mockPatientRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	p, ok := m.patients[id]
	if !ok || p.UserID != userID {
		return apperrors.NewNotFound("patient", nil)
	}
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, userID uuid.UUID) ([]*model.Patient, error) {
	var result []*model.Patient
	for _, p := range m.patients {
		if p.UserID == userID {
			copied := *p
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Search mirrors the store's ILIKE matching on name and email.
func (m *mockPatientRepo) Search(_ context.Context, userID uuid.UUID, term string) ([]*model.Patient, error) {
	term = strings.ToLower(term)
	var result []*model.Patient
	for _, p := range m.patients {
		if p.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Email), term) ||
			strings.Contains(p.Phone, term) {
			copied := *p
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockPatientRepo())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.CreatePatientRequest{
		Name:  "Maria Silva",
		Email: "maria@example.com",
		Phone: "555-0101",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Maria Silva", created.Name)
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := NewService(newMockPatientRepo())

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreatePatientRequest{Name: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdatePatientAppliesOnlyProvidedFields(t *testing.T) {
	repo := newMockPatientRepo()
	svc := NewService(repo)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.CreatePatientRequest{
		Name:  "Maria Silva",
		Email: "maria@example.com",
		Phone: "555-0101",
	})
	require.NoError(t, err)

	newPhone := "555-0202"
	updated, err := svc.Update(context.Background(), userID, created.ID, &model.UpdatePatientRequest{
		Phone: &newPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0202", updated.Phone)
	assert.Equal(t, "Maria Silva", updated.Name)
	assert.Equal(t, "maria@example.com", updated.Email)
}

func TestUpdatePatientRejectsBlankName(t *testing.T) {
	repo := newMockPatientRepo()
	svc := NewService(repo)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.CreatePatientRequest{Name: "Maria Silva"})
	require.NoError(t, err)

	blank := " "
	_, err = svc.Update(context.Background(), userID, created.ID, &model.UpdatePatientRequest{Name: &blank})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPatientAccessIsAccountScoped(t *testing.T) {
	repo := newMockPatientRepo()
	svc := NewService(repo)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, &model.CreatePatientRequest{Name: "Maria Silva"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.Delete(context.Background(), uuid.New(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	repo := newMockPatientRepo()
	svc := NewService(repo)
	userID := uuid.New()

	for _, name := range []string{"Maria Silva", "João Souza", "Mariana Costa"} {
		_, err := svc.Create(context.Background(), userID, &model.CreatePatientRequest{Name: name})
		require.NoError(t, err)
	}

	result, err := svc.Search(context.Background(), userID, "MARIA")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Maria Silva", result[0].Name)
	assert.Equal(t, "Mariana Costa", result[1].Name)
}

func TestSearchEmptyTermListsAll(t *testing.T) {
	repo := newMockPatientRepo()
	svc := NewService(repo)
	userID := uuid.New()

	for _, name := range []string{"Maria Silva", "João Souza"} {
		_, err := svc.Create(context.Background(), userID, &model.CreatePatientRequest{Name: name})
		require.NoError(t, err)
	}

	result, err := svc.Search(context.Background(), userID, "   ")
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
