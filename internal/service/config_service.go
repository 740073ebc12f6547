package service

import (
	"fmt"
	"math"
	"strconv"

	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"

	"go.uber.org/zap"
)

type ConfigService interface {
	GetRate() float64
	SetRate(rate float64, actor string) error
	SeedDefaults() error
}

type configService struct {
	configRepo repository.ConfigRepository
	hub        Publisher
}

func NewConfigService(configRepo repository.ConfigRepository, hub Publisher) ConfigService {
	return &configService{configRepo: configRepo, hub: hub}
}

// GetRate never fails: a missing, unreadable, negative or non-finite value
// falls back to the default rate. A stored zero is returned as is and
// converts every amount to 0.
func (s *configService) GetRate() float64 {
	value, ok, err := s.configRepo.Get(model.ConfigKeyUSDRate)
	if err != nil {
		logger.Get().Warn("rate lookup failed, using default", zap.Error(err))
		return model.DefaultUSDRate
	}
	if !ok {
		return model.DefaultUSDRate
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate < 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		logger.Get().Warn("stored rate is unusable, using default", zap.String("value", value))
		return model.DefaultUSDRate
	}
	return rate
}

func (s *configService) SetRate(rate float64, actor string) error {
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return model.ErrInvalidRate
	}
	value := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := s.configRepo.Upsert(model.ConfigKeyUSDRate, value); err != nil {
		return fmt.Errorf("save rate: %w", err)
	}

	logger.Get().Info("exchange rate updated", zap.Float64("rate", rate), zap.String("by", actor))
	publish(s.hub, ws.Event{
		Type:    "config_update",
		Action:  "rate_updated",
		Data:    map[string]interface{}{"key": model.ConfigKeyUSDRate, "rate": rate},
		User:    actor,
		Message: fmt.Sprintf("%s set the USD rate to %s", actor, value),
	})
	return nil
}

func (s *configService) SeedDefaults() error {
	return s.configRepo.SeedDefault(model.ConfigKeyUSDRate, strconv.FormatFloat(model.DefaultUSDRate, 'f', -1, 64))
}
