package service

import (
	"context"
	"errors"
	"strings"

	"co2watch/internal/repository"
)

var (
	// ErrNegativeThreshold rejects a negative CO₂ limit before anything is
	// persisted; the previously saved value stays untouched.
	ErrNegativeThreshold = errors.New("threshold must be a non-negative number of ppm")

	// ErrEmptyContact rejects a blank phone number.
	ErrEmptyContact = errors.New("contact phone must not be empty")
)

// SettingsView is the read model for the two process-wide settings.
type SettingsView struct {
	ThresholdPPM int    `json:"threshold_ppm"`
	ContactPhone string `json:"contact_phone"`
}

type SettingsService struct {
	settingsRepo repository.SettingsRepo
}

func NewSettingsService(settingsRepo repository.SettingsRepo) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// SetThreshold validates and persists the CO₂ limit. Validation happens
// before the repository is touched.
func (s *SettingsService) SetThreshold(ctx context.Context, ppm int) error {
	if ppm < 0 {
		return ErrNegativeThreshold
	}
	return s.settingsRepo.SaveThreshold(ctx, ppm)
}

// SetContact persists the alert phone number, trimmed. The number is stored
// as given otherwise; the delivery gateway owns format enforcement.
func (s *SettingsService) SetContact(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrEmptyContact
	}
	return s.settingsRepo.SaveContact(ctx, phone)
}

// GetSettings loads both settings, falling back to repository defaults when
// nothing was ever saved.
func (s *SettingsService) GetSettings(ctx context.Context) (SettingsView, error) {
	ppm, err := s.settingsRepo.LoadThreshold(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	phone, err := s.settingsRepo.LoadContact(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	return SettingsView{ThresholdPPM: ppm, ContactPhone: phone}, nil
}
