package services

import (
	"errors"

	"avcoe-site/internal/models"

	"gorm.io/gorm"
)

const (
	defaultLanguage       = "en"
	defaultSliderInterval = 7000
)

type SettingsService struct{}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// EnsureDefaults seeds the singleton settings row if none exists.
func (s *SettingsService) EnsureDefaults() error {
	var settings models.SiteSettings
	err := models.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SiteSettings{
			DefaultLanguage:  defaultLanguage,
			SliderIntervalMS: defaultSliderInterval,
		}
		return models.DB.Create(&settings).Error
	}
	return err
}

// Get returns the settings singleton, seeding defaults if needed.
func (s *SettingsService) Get() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := models.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.EnsureDefaults(); err != nil {
			return nil, err
		}
		err = models.DB.First(&settings).Error
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update replaces the mutable fields of the singleton.
func (s *SettingsService) Update(defaultLang string, sliderIntervalMS int, welcomeMessage string) (*models.SiteSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	settings.DefaultLanguage = defaultLang
	settings.SliderIntervalMS = sliderIntervalMS
	settings.WelcomeMessage = welcomeMessage

	if err := models.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
