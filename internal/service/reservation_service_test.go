package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

// mockReservationStore replicates the conditional-write semantics of the SQL
// layer: a claim succeeds only when the slot is NULL or already held by the
// same inspector.
type mockReservationStore struct {
	mu          sync.Mutex
	internships map[string]*models.Internship
}

func newMockReservationStore(internships ...*models.Internship) *mockReservationStore {
	store := &mockReservationStore{internships: make(map[string]*models.Internship)}
	for _, internship := range internships {
		store.internships[internship.ID] = internship
	}
	return store
}

func (m *mockReservationStore) GetByID(ctx context.Context, id string) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	internship, ok := m.internships[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *internship
	return &copied, nil
}

func (m *mockReservationStore) ClaimReservation(ctx context.Context, id, inspectorID string) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	internship, ok := m.internships[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if internship.ReservationUserID != nil && *internship.ReservationUserID != inspectorID {
		return nil, sql.ErrNoRows
	}
	internship.ReservationUserID = &inspectorID
	copied := *internship
	return &copied, nil
}

func (m *mockReservationStore) ClaimAllAtLocation(ctx context.Context, locationID, inspectorID string, activeOnly bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	claimed := 0
	for _, internship := range m.internships {
		if internship.LocationID != locationID || internship.ReservationUserID != nil {
			continue
		}
		holder := inspectorID
		internship.ReservationUserID = &holder
		claimed++
	}
	return claimed, nil
}

func (m *mockReservationStore) SetHighlighted(ctx context.Context, id string, value bool) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	internship, ok := m.internships[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	internship.Highlighted = value
	copied := *internship
	return &copied, nil
}

type mockUserDirectory struct {
	users map[string]*models.User
}

func (m *mockUserDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newReservationService(store *mockReservationStore, users map[string]*models.User) *ReservationService {
	return NewReservationService(store, &mockUserDirectory{users: users}, nil, nil, zap.NewNop())
}

func TestClaimSingleWins(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1", LocationID: "loc-1"})
	svc := newReservationService(store, nil)

	internship, err := svc.ClaimSingle(context.Background(), "int-1", "", teacherClaims("teacher-1"))
	require.NoError(t, err)
	require.True(t, internship.Reserved())
	assert.Equal(t, "teacher-1", *internship.ReservationUserID)
}

func TestClaimSingleSelfReclaimIsNoop(t *testing.T) {
	holder := "teacher-1"
	store := newMockReservationStore(&models.Internship{ID: "int-1", ReservationUserID: &holder})
	svc := newReservationService(store, nil)

	internship, err := svc.ClaimSingle(context.Background(), "int-1", "", teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", *internship.ReservationUserID)
}

func TestClaimSingleAlreadyReserved(t *testing.T) {
	holder := "teacher-1"
	store := newMockReservationStore(&models.Internship{ID: "int-1", ReservationUserID: &holder})
	svc := newReservationService(store, nil)

	_, err := svc.ClaimSingle(context.Background(), "int-1", "", teacherClaims("teacher-2"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyReserved.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "teacher-1", *store.internships["int-1"].ReservationUserID)
}

func TestClaimSingleNotFound(t *testing.T) {
	svc := newReservationService(newMockReservationStore(), nil)

	_, err := svc.ClaimSingle(context.Background(), "missing", "", teacherClaims("teacher-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClaimSingleStudentForbidden(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1"})
	svc := newReservationService(store, nil)

	_, err := svc.ClaimSingle(context.Background(), "int-1", "", studentClaims("student-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.False(t, store.internships["int-1"].Reserved())
}

func TestClaimSingleOnBehalfRequiresAdmin(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1"})
	users := map[string]*models.User{
		"teacher-2": {ID: "teacher-2", Role: models.RoleTeacher},
	}
	svc := newReservationService(store, users)

	_, err := svc.ClaimSingle(context.Background(), "int-1", "teacher-2", teacherClaims("teacher-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	admin := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	internship, err := svc.ClaimSingle(context.Background(), "int-1", "teacher-2", admin)
	require.NoError(t, err)
	assert.Equal(t, "teacher-2", *internship.ReservationUserID)
}

func TestClaimSingleOnBehalfUnknownInspector(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1"})
	svc := newReservationService(store, map[string]*models.User{})

	admin := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	_, err := svc.ClaimSingle(context.Background(), "int-1", "ghost", admin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClaimSingleConcurrentSingleWinner(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1"})
	svc := newReservationService(store, nil)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		inspector := string(rune('a' + i))
		wg.Add(1)
		go func(inspector string) {
			defer wg.Done()
			_, err := svc.ClaimSingle(context.Background(), "int-1", "",
				&models.JWTClaims{UserID: inspector, Role: models.RoleTeacher})
			errs <- err
		}(inspector)
	}
	wg.Wait()
	close(errs)

	wins, losses := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case appErrors.FromError(err).Code == appErrors.ErrAlreadyReserved.Code:
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, losses)
}

func TestBulkClaimCountsOnlyWonRows(t *testing.T) {
	holder := "teacher-9"
	store := newMockReservationStore(
		&models.Internship{ID: "int-1", LocationID: "loc-1"},
		&models.Internship{ID: "int-2", LocationID: "loc-1", ReservationUserID: &holder},
		&models.Internship{ID: "int-3", LocationID: "loc-1"},
		&models.Internship{ID: "int-4", LocationID: "loc-2"},
	)
	svc := newReservationService(store, nil)

	claimed, err := svc.ClaimAllUnreservedAtLocation(context.Background(), "loc-1", "", false, teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.Equal(t, 2, claimed)
	assert.Equal(t, "teacher-9", *store.internships["int-2"].ReservationUserID)
	assert.False(t, store.internships["int-4"].Reserved())
}

func TestBulkClaimZeroIsSuccess(t *testing.T) {
	svc := newReservationService(newMockReservationStore(), nil)

	claimed, err := svc.ClaimAllUnreservedAtLocation(context.Background(), "loc-1", "", false, teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.Zero(t, claimed)
}

func TestBulkClaimBlankLocation(t *testing.T) {
	svc := newReservationService(newMockReservationStore(), nil)

	_, err := svc.ClaimAllUnreservedAtLocation(context.Background(), "  ", "", false, teacherClaims("teacher-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSetHighlightedIdempotent(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1"})
	svc := newReservationService(store, nil)

	internship, err := svc.SetHighlighted(context.Background(), "int-1", true, teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.True(t, internship.Highlighted)

	internship, err = svc.SetHighlighted(context.Background(), "int-1", true, teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.True(t, internship.Highlighted)

	internship, err = svc.SetHighlighted(context.Background(), "int-1", false, teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.False(t, internship.Highlighted)
}

func TestSetHighlightedRoleGate(t *testing.T) {
	store := newMockReservationStore(&models.Internship{ID: "int-1"})
	svc := newReservationService(store, nil)

	_, err := svc.SetHighlighted(context.Background(), "int-1", true, studentClaims("student-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.SetHighlighted(context.Background(), "missing", true, teacherClaims("teacher-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
