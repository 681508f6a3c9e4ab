package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"example.com/travel-buddy/backend/internal/models"
)

type citiesDocument struct {
	XMLName xml.Name      `xml:"cities"`
	Cities  []models.City `xml:"city"`
}

// CityStore хранит справочник городов из XML-файла. Справочник читается
// один раз при старте: записи в него через API нет.
type CityStore struct {
	mu     sync.RWMutex
	cities []models.City
}

// NewCityStore загружает справочник городов из XML-файла.
func NewCityStore(path string) (*CityStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &CityStore{}, nil
		}
		return nil, fmt.Errorf("load city catalog %q: %w", path, err)
	}

	var doc citiesDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load city catalog %q: %w", path, err)
	}

	return &CityStore{cities: doc.Cities}, nil
}

// FindAll возвращает копию списка городов.
func (s *CityStore) FindAll() []models.City {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.City, len(s.cities))
	copy(out, s.cities)
	return out
}

// FindByID возвращает город по идентификатору.
func (s *CityStore) FindByID(id int64) (models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, city := range s.cities {
		if city.ID == id {
			return city, nil
		}
	}

	return models.City{}, ErrNotFound
}

// FindByName возвращает город по имени без учета регистра.
func (s *CityStore) FindByName(name string) (models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, city := range s.cities {
		if strings.EqualFold(city.Name, name) {
			return city, nil
		}
	}

	return models.City{}, ErrNotFound
}
