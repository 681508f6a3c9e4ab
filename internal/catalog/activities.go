// Package catalog реализует XML-хранилища справочных данных (города, активности)
// с кэшем в памяти. Хранилища создаются явно и передаются по ссылке,
// без глобальных синглтонов.
package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"example.com/travel-buddy/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type activitiesDocument struct {
	XMLName    xml.Name          `xml:"activities"`
	Activities []models.Activity `xml:"activity"`
}

// ActivityStore хранит активности в XML-файле и кэширует их в памяти.
// Читатели всегда получают копии: запущенный расчет маршрута работает
// со своим снимком и не видит конкурентных изменений каталога.
type ActivityStore struct {
	mu         sync.RWMutex
	path       string
	activities []models.Activity
}

// NewActivityStore загружает каталог активностей из XML-файла.
// Отсутствующий файл не является ошибкой: каталог стартует пустым.
func NewActivityStore(path string) (*ActivityStore, error) {
	store := &ActivityStore{path: path}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("load activity catalog %q: %w", path, err)
	}

	return store, nil
}

func (s *ActivityStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.activities = nil
			return nil
		}
		return err
	}

	var doc activitiesDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}

	s.activities = doc.Activities
	return nil
}

func (s *ActivityStore) save() error {
	doc := activitiesDocument{Activities: s.activities}

	data, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(s.path, append([]byte(xml.Header), data...), 0o644)
}

// FindAll возвращает копию всех активностей каталога.
func (s *ActivityStore) FindAll() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// FindByID возвращает активность по идентификатору.
func (s *ActivityStore) FindByID(id int64) (models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, activity := range s.activities {
		if activity.ID == id {
			return activity, nil
		}
	}

	return models.Activity{}, ErrNotFound
}

// FindByCity возвращает активности города без учета регистра.
func (s *ActivityStore) FindByCity(city string) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Activity
	for _, activity := range s.activities {
		if strings.EqualFold(activity.City, city) {
			out = append(out, activity)
		}
	}
	return out
}

// FindByType возвращает активности заданного типа без учета регистра.
func (s *ActivityStore) FindByType(activityType string) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Activity
	for _, activity := range s.activities {
		if strings.EqualFold(activity.Type, activityType) {
			out = append(out, activity)
		}
	}
	return out
}

// FindByCityAndTypes возвращает активности города с типом из переданного набора.
func (s *ActivityStore) FindByCityAndTypes(city string, types []string) []models.Activity {
	accepted := make(map[string]struct{}, len(types))
	for _, t := range types {
		accepted[strings.ToLower(t)] = struct{}{}
	}

	var out []models.Activity
	for _, activity := range s.FindByCity(city) {
		if _, ok := accepted[strings.ToLower(activity.Type)]; ok {
			out = append(out, activity)
		}
	}
	return out
}

// FindByCityAndBudget возвращает активности города не дороже maxCost.
func (s *ActivityStore) FindByCityAndBudget(city string, maxCost float64) []models.Activity {
	var out []models.Activity
	for _, activity := range s.FindByCity(city) {
		if activity.Cost <= maxCost {
			out = append(out, activity)
		}
	}
	return out
}

// Save сохраняет активность. Нулевой идентификатор означает создание:
// новой записи выдается max(id)+1, как в исходном каталоге.
func (s *ActivityStore) Save(activity models.Activity) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if activity.ID == 0 {
		var maxID int64
		for _, existing := range s.activities {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		activity.ID = maxID + 1
		s.activities = append(s.activities, activity)
	} else {
		replaced := false
		for i, existing := range s.activities {
			if existing.ID == activity.ID {
				s.activities[i] = activity
				replaced = true
				break
			}
		}
		if !replaced {
			s.activities = append(s.activities, activity)
		}
	}

	if err := s.save(); err != nil {
		return models.Activity{}, fmt.Errorf("save activity catalog: %w", err)
	}

	return activity, nil
}

// DeleteByID удаляет активность по идентификатору.
func (s *ActivityStore) DeleteByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, activity := range s.activities {
		if activity.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			if err := s.save(); err != nil {
				return fmt.Errorf("save activity catalog: %w", err)
			}
			return nil
		}
	}

	return ErrNotFound
}

// DistinctTypes возвращает уникальные типы активностей в порядке появления.
func (s *ActivityStore) DistinctTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return distinctTypes(s.activities)
}

// DistinctTypesByCity возвращает уникальные типы активностей города.
func (s *ActivityStore) DistinctTypesByCity(city string) []string {
	return distinctTypes(s.FindByCity(city))
}

func distinctTypes(activities []models.Activity) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, activity := range activities {
		key := strings.ToLower(activity.Type)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, activity.Type)
	}

	return out
}
