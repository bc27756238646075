package salons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/SC-BookingService/internal/service/salons/models"
)

// Service сервис для работы с салонами
type Service struct {
	salonRepo    SalonRepository
	userRepo     UserRepository
	ownerPolicy  OwnerPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	userRepo UserRepository,
	ownerPolicy OwnerPolicy,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:    salonRepo,
		userRepo:     userRepo,
		ownerPolicy:  ownerPolicy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// UpsertProfile создает или обновляет профиль салона владельца
// Владелец может редактировать профиль в любом статусе верификации,
// но салон остаётся невидимым покупателям, пока администратор не выставит оба флага.
// Создание нового профиля помечает пользователя как владельца салона.
func (s *Service) UpsertProfile(ctx context.Context, identity domain.Identity, req *models.UpsertProfileRequest) (*models.OwnerSalonResponse, error) {
	s.logger.Info("UpsertProfile: owner=%s, salon=%q", identity.UserID, req.Name)

	// Эвристика допуска владельца (подменяемая политика)
	if !s.ownerPolicy.CanActAsOwner(identity) {
		s.logger.Warn("UpsertProfile: owner gate rejected user=%s, email=%s", identity.UserID, identity.Email)
		return nil, ErrOwnerGateRejected
	}

	if err := validateProfile(req); err != nil {
		s.logger.Warn("UpsertProfile: validation failed for owner=%s: %v", identity.UserID, err)
		return nil, err
	}

	existing, err := s.salonRepo.GetByOwnerID(ctx, identity.UserID)
	if err != nil && !errors.Is(err, salonRepo.ErrSalonNotFound) {
		s.logger.Error("UpsertProfile: repository error for owner=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: UpsertProfile - repository error: %v", ErrInternal, err)
	}

	var result *domain.Salon

	if existing == nil {
		// Первое сохранение профиля: салон создаётся невидимым
		salon := &domain.Salon{
			OwnerID:     identity.UserID,
			Name:        req.Name,
			Address:     req.Address,
			Landmark:    req.Landmark,
			City:        req.City,
			State:       req.State,
			Description: req.Description,
			Services:    req.Services,
		}

		result, err = s.salonRepo.Create(ctx, salon)
		switch {
		case err == nil:
			s.logger.Info("UpsertProfile: created salon id=%s for owner=%s", result.ID, identity.UserID)

		case errors.Is(err, salonRepo.ErrOwnerHasSalon):
			// Гонка двух первых сохранений: параллельный запрос уже создал
			// салон, дочитываем его и продолжаем как обновление
			s.logger.Warn("UpsertProfile: concurrent first save for owner=%s, updating existing salon", identity.UserID)
			existing, err = s.salonRepo.GetByOwnerID(ctx, identity.UserID)
			if err != nil {
				s.logger.Error("UpsertProfile: failed to reread salon for owner=%s: %v", identity.UserID, err)
				return nil, fmt.Errorf("%w: UpsertProfile - reread salon: %v", ErrInternal, err)
			}

		default:
			s.logger.Error("UpsertProfile: failed to create salon for owner=%s: %v", identity.UserID, err)
			return nil, fmt.Errorf("%w: UpsertProfile - create salon: %v", ErrInternal, err)
		}
	}

	if existing != nil {
		applyProfile(existing, req)

		if err := s.salonRepo.UpdateProfile(ctx, existing); err != nil {
			s.logger.Error("UpsertProfile: failed to update salon id=%s: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: UpsertProfile - update salon: %v", ErrInternal, err)
		}

		result = existing
		s.logger.Info("UpsertProfile: updated salon id=%s for owner=%s", result.ID, identity.UserID)
	}

	// Помечаем аккаунт владельцем салона (флаг только взводится)
	userRecord := &domain.User{
		ID:           identity.UserID,
		Email:        identity.Email,
		DisplayName:  identity.DisplayName,
		IsSalonOwner: true,
	}
	if err := s.userRepo.Upsert(ctx, userRecord); err != nil {
		// Запись пользователя вторична, профиль уже сохранён
		s.logger.Error("UpsertProfile: failed to upsert user record for owner=%s: %v", identity.UserID, err)
	}

	return models.FromDomainSalonForOwner(result), nil
}

// GetOwnSalon получает салон владельца для личного кабинета
func (s *Service) GetOwnSalon(ctx context.Context, identity domain.Identity) (*models.OwnerSalonResponse, error) {
	s.logger.Info("GetOwnSalon: owner=%s", identity.UserID)

	if !s.ownerPolicy.CanActAsOwner(identity) {
		s.logger.Warn("GetOwnSalon: owner gate rejected user=%s", identity.UserID)
		return nil, ErrOwnerGateRejected
	}

	salon, err := s.salonRepo.GetByOwnerID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetOwnSalon: repository error for owner=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: GetOwnSalon - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalonForOwner(salon), nil
}

// ListPublic получает список публично видимых салонов
// Видимость: is_authorized AND is_paid
func (s *Service) ListPublic(ctx context.Context, req *models.ListPublicRequest) (*models.SalonListResponse, error) {
	salons, err := s.salonRepo.List(ctx, req.ToDomainFilter(), true)
	if err != nil {
		s.logger.Error("ListPublic: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPublic - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPublic: fetched %d visible salons", len(salons))
	return models.FromDomainSalonList(salons), nil
}

// GetPublic получает публично видимый салон по ID
// Невидимый салон для покупателя неотличим от несуществующего
func (s *Service) GetPublic(ctx context.Context, id string) (*models.SalonResponse, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetPublic: repository error for salon=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	if !salon.IsVisible() {
		s.logger.Warn("GetPublic: salon id=%s is not publicly visible", id)
		return nil, ErrSalonNotFound
	}

	return models.FromDomainSalon(salon), nil
}

// ListAll получает все салоны, включая непроверенные (только администратор)
// Платёжная ссылка в ответе используется для ручной сверки с выпиской
func (s *Service) ListAll(ctx context.Context) (*models.AdminSalonListResponse, error) {
	salons, err := s.salonRepo.List(ctx, domain.SalonFilter{}, false)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: fetched %d salons", len(salons))
	return models.FromDomainSalonListForAdmin(salons), nil
}

// SetAuthorization выставляет флаг проверки салона (только администратор)
func (s *Service) SetAuthorization(ctx context.Context, salonID string, authorized bool) error {
	s.logger.Info("SetAuthorization: salon=%s, authorized=%t", salonID, authorized)

	if err := s.salonRepo.SetAuthorization(ctx, salonID, authorized); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		s.logger.Error("SetAuthorization: repository error for salon=%s: %v", salonID, err)
		return fmt.Errorf("%w: SetAuthorization - repository error: %v", ErrInternal, err)
	}

	return nil
}

// SetPaid выставляет флаг оплаты подписки (только администратор)
// Вызывается после ручной сверки платёжной ссылки SC_<ownerId> с выпиской
func (s *Service) SetPaid(ctx context.Context, salonID string, paid bool) error {
	s.logger.Info("SetPaid: salon=%s, paid=%t", salonID, paid)

	var paidAt *time.Time
	if paid {
		now := s.timeProvider.Now()
		paidAt = &now
	}

	if err := s.salonRepo.SetPaid(ctx, salonID, paid, paidAt); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		s.logger.Error("SetPaid: repository error for salon=%s: %v", salonID, err)
		return fmt.Errorf("%w: SetPaid - repository error: %v", ErrInternal, err)
	}

	return nil
}

// applyProfile переносит поля запроса в профиль салона
// Флаги верификации и оплаты не затрагиваются
func applyProfile(salon *domain.Salon, req *models.UpsertProfileRequest) {
	salon.Name = req.Name
	salon.Address = req.Address
	salon.Landmark = req.Landmark
	salon.City = req.City
	salon.State = req.State
	salon.Description = req.Description
	salon.Services = req.Services
}

// validateProfile проверяет обязательные поля профиля салона
func validateProfile(req *models.UpsertProfileRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if req.City == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if req.State == "" {
		return fmt.Errorf("%w: state is required", ErrInvalidInput)
	}
	if len(req.Services) > domain.MaxServicesPerSalon {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerSalon)
	}
	for _, svc := range req.Services {
		if svc.Name == "" {
			return fmt.Errorf("%w: service name is required", ErrInvalidInput)
		}
		if len(svc.Name) > domain.MaxServiceNameLength {
			return fmt.Errorf("%w: service name too long, max %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
		}
		if svc.Price < 0 {
			return fmt.Errorf("%w: service price must be non-negative", ErrInvalidInput)
		}
	}
	return nil
}
