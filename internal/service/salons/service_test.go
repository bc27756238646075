package salons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-BookingService/internal/domain"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type allowAll struct{}

func (allowAll) CanActAsOwner(_ domain.Identity) bool { return true }

type denyAll struct{}

func (denyAll) CanActAsOwner(_ domain.Identity) bool { return false }

type mockSalonRepo struct {
	byOwner    *domain.Salon
	byOwnerErr error
	byID       *domain.Salon
	byIDErr    error
	listed     []*domain.Salon

	created       *domain.Salon
	createErr     error
	rereadSalon   *domain.Salon // отдаётся повторным GetByOwnerID после первого чтения
	byOwnerCalls  int
	updated       *domain.Salon
	setAuthErr    error
	setPaidErr    error
	lastPaid      *bool
	lastPaidAt    *time.Time
	lastVisible   bool
	lastListCalls int
}

func (m *mockSalonRepo) Create(_ context.Context, salon *domain.Salon) (*domain.Salon, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	s := *salon
	s.ID = "salon-1"
	m.created = &s
	return &s, nil
}

func (m *mockSalonRepo) GetByID(_ context.Context, _ string) (*domain.Salon, error) {
	return m.byID, m.byIDErr
}

func (m *mockSalonRepo) GetByOwnerID(_ context.Context, _ string) (*domain.Salon, error) {
	m.byOwnerCalls++
	if m.byOwnerCalls > 1 && m.rereadSalon != nil {
		return m.rereadSalon, nil
	}
	return m.byOwner, m.byOwnerErr
}

func (m *mockSalonRepo) List(_ context.Context, _ domain.SalonFilter, visibleOnly bool) ([]*domain.Salon, error) {
	m.lastVisible = visibleOnly
	m.lastListCalls++
	return m.listed, nil
}

func (m *mockSalonRepo) UpdateProfile(_ context.Context, salon *domain.Salon) error {
	m.updated = salon
	return nil
}

func (m *mockSalonRepo) SetAuthorization(_ context.Context, _ string, _ bool) error {
	return m.setAuthErr
}

func (m *mockSalonRepo) SetPaid(_ context.Context, _ string, paid bool, paidAt *time.Time) error {
	m.lastPaid = &paid
	m.lastPaidAt = paidAt
	return m.setPaidErr
}

type mockUserRepo struct {
	upserted *domain.User
}

func (m *mockUserRepo) Upsert(_ context.Context, user *domain.User) error {
	m.upserted = user
	return nil
}

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ownerUser = domain.Identity{
		UserID:        "owner-12345678",
		Email:         "owner@gmail.com",
		DisplayName:   "Owner",
		EmailVerified: true,
	}
)

func profileRequest() *models.UpsertProfileRequest {
	return &models.UpsertProfileRequest{
		Name:    "Glow Studio",
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Services: []domain.Service{
			{Name: "Haircut", Price: 300},
		},
	}
}

func newTestService(repo *mockSalonRepo, users *mockUserRepo, policy OwnerPolicy) *Service {
	svc := NewService(repo, users, policy, stubLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}
	return svc
}

func TestUpsertProfile_CreatesSalonInvisible(t *testing.T) {
	repo := &mockSalonRepo{byOwnerErr: salonRepo.ErrSalonNotFound}
	users := &mockUserRepo{}
	svc := newTestService(repo, users, allowAll{})

	resp, err := svc.UpsertProfile(context.Background(), ownerUser, profileRequest())
	require.NoError(t, err)

	// Новый салон невидим до решения администратора
	require.NotNil(t, repo.created)
	assert.False(t, repo.created.IsAuthorized)
	assert.False(t, repo.created.IsPaid)
	assert.False(t, resp.IsAuthorized)
	assert.False(t, resp.IsPaid)

	// Платёжные реквизиты подписки в ответе владельцу
	assert.Equal(t, "SC_owner-12", resp.PaymentReference)
	assert.Equal(t, domain.SubscriptionFeeINR, resp.SubscriptionFee)

	// Аккаунт помечается владельцем салона
	require.NotNil(t, users.upserted)
	assert.True(t, users.upserted.IsSalonOwner)
}

func TestUpsertProfile_UpdatesExistingKeepsFlags(t *testing.T) {
	existing := &domain.Salon{
		ID:           "salon-1",
		OwnerID:      ownerUser.UserID,
		Name:         "Old Name",
		IsAuthorized: true,
		IsPaid:       true,
	}
	repo := &mockSalonRepo{byOwner: existing}
	svc := newTestService(repo, &mockUserRepo{}, allowAll{})

	resp, err := svc.UpsertProfile(context.Background(), ownerUser, profileRequest())
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, "Glow Studio", repo.updated.Name)
	// Редактирование профиля не сбрасывает флаги верификации
	assert.True(t, resp.IsAuthorized)
	assert.True(t, resp.IsPaid)
	assert.Nil(t, repo.created)
}

func TestUpsertProfile_ConcurrentFirstSaveBecomesUpdate(t *testing.T) {
	// Параллельный запрос создал салон между чтением и вставкой
	raced := &domain.Salon{ID: "salon-1", OwnerID: ownerUser.UserID, Name: "Old Name"}
	repo := &mockSalonRepo{
		byOwnerErr:  salonRepo.ErrSalonNotFound,
		createErr:   salonRepo.ErrOwnerHasSalon,
		rereadSalon: raced,
	}
	users := &mockUserRepo{}
	svc := newTestService(repo, users, allowAll{})

	resp, err := svc.UpsertProfile(context.Background(), ownerUser, profileRequest())
	require.NoError(t, err)

	// Запрос дочитал созданный салон и применил профиль как обновление
	require.NotNil(t, repo.updated)
	assert.Equal(t, "salon-1", repo.updated.ID)
	assert.Equal(t, "Glow Studio", repo.updated.Name)
	assert.Equal(t, "Glow Studio", resp.Name)
}

func TestUpsertProfile_OwnerGateRejected(t *testing.T) {
	svc := newTestService(&mockSalonRepo{}, &mockUserRepo{}, denyAll{})

	_, err := svc.UpsertProfile(context.Background(), ownerUser, profileRequest())
	assert.ErrorIs(t, err, ErrOwnerGateRejected)
}

func TestUpsertProfile_Validation(t *testing.T) {
	svc := newTestService(&mockSalonRepo{byOwnerErr: salonRepo.ErrSalonNotFound}, &mockUserRepo{}, allowAll{})

	tests := []struct {
		name   string
		mutate func(*models.UpsertProfileRequest)
	}{
		{"missing name", func(r *models.UpsertProfileRequest) { r.Name = "" }},
		{"missing address", func(r *models.UpsertProfileRequest) { r.Address = "" }},
		{"missing city", func(r *models.UpsertProfileRequest) { r.City = "" }},
		{"missing state", func(r *models.UpsertProfileRequest) { r.State = "" }},
		{"unnamed service", func(r *models.UpsertProfileRequest) { r.Services[0].Name = "" }},
		{"negative price", func(r *models.UpsertProfileRequest) { r.Services[0].Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := profileRequest()
			tt.mutate(req)
			_, err := svc.UpsertProfile(context.Background(), ownerUser, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetPublic_InvisibleSalonLooksAbsent(t *testing.T) {
	hidden := &domain.Salon{ID: "salon-1", IsAuthorized: true, IsPaid: false}
	svc := newTestService(&mockSalonRepo{byID: hidden}, &mockUserRepo{}, allowAll{})

	_, err := svc.GetPublic(context.Background(), "salon-1")
	// Невидимый салон неотличим от несуществующего
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestGetPublic_VisibleSalon(t *testing.T) {
	visible := &domain.Salon{ID: "salon-1", Name: "Glow Studio", IsAuthorized: true, IsPaid: true}
	svc := newTestService(&mockSalonRepo{byID: visible}, &mockUserRepo{}, allowAll{})

	resp, err := svc.GetPublic(context.Background(), "salon-1")
	require.NoError(t, err)
	assert.Equal(t, "Glow Studio", resp.Name)
}

func TestListPublic_OnlyVisible(t *testing.T) {
	repo := &mockSalonRepo{}
	svc := newTestService(repo, &mockUserRepo{}, allowAll{})

	_, err := svc.ListPublic(context.Background(), &models.ListPublicRequest{})
	require.NoError(t, err)
	assert.True(t, repo.lastVisible)
}

func TestListAll_IncludesHidden(t *testing.T) {
	repo := &mockSalonRepo{listed: []*domain.Salon{
		{ID: "salon-1", OwnerID: "owner-12345678", IsAuthorized: false, IsPaid: false},
	}}
	svc := newTestService(repo, &mockUserRepo{}, allowAll{})

	resp, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.False(t, repo.lastVisible)
	require.Len(t, resp.Salons, 1)
	assert.Equal(t, "SC_owner-12", resp.Salons[0].PaymentReference)
}

func TestSetPaid_StampsPaymentTime(t *testing.T) {
	repo := &mockSalonRepo{}
	svc := newTestService(repo, &mockUserRepo{}, allowAll{})

	require.NoError(t, svc.SetPaid(context.Background(), "salon-1", true))
	require.NotNil(t, repo.lastPaidAt)
	assert.Equal(t, testNow, *repo.lastPaidAt)

	// Снятие оплаты не затирает отметку новым временем
	require.NoError(t, svc.SetPaid(context.Background(), "salon-1", false))
	assert.Nil(t, repo.lastPaidAt)
}

func TestSetAuthorization_NotFound(t *testing.T) {
	repo := &mockSalonRepo{setAuthErr: salonRepo.ErrSalonNotFound}
	svc := newTestService(repo, &mockUserRepo{}, allowAll{})

	err := svc.SetAuthorization(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
