// Package data управляет записями локальной реплики: добавление,
// редактирование, удаление и выборки. Синхронизацией занимается пакет sync.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/clock"
	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/internal/validation"
)

var (
	// ErrEmptyText возвращается при попытке сохранить цитату без текста
	ErrEmptyText = errors.New("quote text is required")

	// ErrNoRecords возвращается, если под фильтр не попала ни одна запись
	ErrNoRecords = errors.New("no quotes found")
)

// Service handles local record operations.
// Every write loads the whole replica, changes one record and saves it back.
type Service struct {
	records storage.RecordStorage
	clock   *clock.Clock
	logger  *slog.Logger
	pick    func(n int) int
}

// NewService creates a new data service
func NewService(records storage.RecordStorage, clk *clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		records: records,
		clock:   clk,
		logger:  logger,
		pick:    rand.IntN,
	}
}

// Add создает новую запись с новым ID и текущей меткой времени.
// Пустая категория заменяется на models.DefaultCategory.
func (s *Service) Add(ctx context.Context, text, category string) (*models.Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := validateFields(text, category); err != nil {
		return nil, err
	}

	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	record := models.Record{
		ID:        uuid.New().String(),
		Text:      text,
		Category:  normalizeCategory(category),
		UpdatedAt: s.clock.Tick(),
	}
	collection[record.ID] = record

	if err := s.save(ctx, collection); err != nil {
		return nil, err
	}

	s.logger.Debug("record added", "id", record.ID, "category", record.Category)
	return &record, nil
}

// Edit изменяет текст и/или категорию записи. Пустое значение оставляет поле без изменений.
// UpdatedAt всегда растет, даже если содержимое не поменялось.
func (s *Service) Edit(ctx context.Context, id, text, category string) (*models.Record, error) {
	text, category = strings.TrimSpace(text), strings.TrimSpace(category)
	if err := validateFields(text, category); err != nil {
		return nil, err
	}

	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := collection[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, storage.ErrRecordNotFound)
	}

	if text != "" {
		record.Text = text
	}
	if category != "" {
		record.Category = category
	}
	record.UpdatedAt = s.clock.Tick()
	collection[id] = record

	if err := s.save(ctx, collection); err != nil {
		return nil, err
	}

	s.logger.Debug("record edited", "id", id, "updated_at", record.UpdatedAt)
	return &record, nil
}

// Remove удаляет запись только из локальной реплики.
// Сервер не уведомляется, поэтому следующая синхронизация вернет запись обратно.
func (s *Service) Remove(ctx context.Context, id string) error {
	collection, err := s.load(ctx)
	if err != nil {
		return err
	}

	if _, ok := collection[id]; !ok {
		return fmt.Errorf("record %s: %w", id, storage.ErrRecordNotFound)
	}
	delete(collection, id)

	if err := s.save(ctx, collection); err != nil {
		return err
	}

	s.logger.Debug("record removed locally", "id", id)
	return nil
}

// Get возвращает запись по ID
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := collection[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, storage.ErrRecordNotFound)
	}
	return &record, nil
}

// List returns records, newest first. An empty category matches all records.
func (s *Service) List(ctx context.Context, category string) ([]models.Record, error) {
	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Record, 0, len(collection))
	for _, r := range collection {
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Categories returns the distinct categories of the local replica.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	collection, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Categories(), nil
}

// Random возвращает случайную запись из категории (или из всех)
func (s *Service) Random(ctx context.Context, category string) (*models.Record, error) {
	list, err := s.List(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoRecords
	}

	record := list[s.pick(len(list))]
	return &record, nil
}

func (s *Service) load(ctx context.Context) (models.Collection, error) {
	collection, err := s.records.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local records: %w", err)
	}
	if collection == nil {
		collection = models.Collection{}
	}

	// Метки из хранилища могли прийти с сервера; новая метка должна быть больше любой из них
	for _, r := range collection {
		s.clock.Observe(r.UpdatedAt)
	}
	return collection, nil
}

func (s *Service) save(ctx context.Context, collection models.Collection) error {
	if err := s.records.SaveRecords(ctx, collection); err != nil {
		return fmt.Errorf("save local records: %w", err)
	}
	return nil
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.DefaultCategory
	}
	return category
}

// validateFields проверяет непустые поля; пустое значение означает "не задано"
func validateFields(text, category string) error {
	if text != "" {
		if err := validation.ValidateText(text); err != nil {
			return err
		}
	}
	return validation.ValidateCategory(category)
}
