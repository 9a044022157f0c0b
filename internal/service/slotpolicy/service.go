package slotpolicy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/slotpolicy"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/slotpolicy/models"
)

// Service сервис политики слотов.
// Если в БД политики нет, действует политика по умолчанию из конфигурации
type Service struct {
	repo     PolicyRepository
	defaults domain.SlotPolicy
	logger   Logger
}

// NewService создает новый экземпляр сервиса политики слотов
func NewService(repo PolicyRepository, defaults domain.SlotPolicy, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Active возвращает действующую политику
func (s *Service) Active(ctx context.Context) (domain.SlotPolicy, error) {
	policy, _, err := s.load(ctx)
	return policy, err
}

// Get возвращает действующую политику в виде DTO
func (s *Service) Get(ctx context.Context) (*models.SlotPolicyResponse, error) {
	s.logger.Info("Get: fetching slot policy")

	policy, isDefault, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(policy, isDefault), nil
}

// Update частично обновляет политику и сохраняет её
func (s *Service) Update(ctx context.Context, req *models.UpdateSlotPolicyRequest) (*models.SlotPolicyResponse, error) {
	s.logger.Info("Update: updating slot policy")

	current, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	updated := req.Apply(current)
	if err := updated.Check(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: slot policy saved, openHour=%d, granularity=%d, weekdaysOnly=%t",
		saved.OpenHour, saved.GranularityMinutes, saved.WeekdaysOnly)
	return models.FromDomainPolicy(*saved, false), nil
}

// load читает политику из БД с откатом на значения по умолчанию
func (s *Service) load(ctx context.Context) (domain.SlotPolicy, bool, error) {
	policy, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return s.defaults, true, nil
		}
		s.logger.Error("load: repository error: %v", err)
		return domain.SlotPolicy{}, false, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}
	return *policy, false, nil
}
