package application

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"sangbangcopy/backend/internal/features/learning/domain"
	"sangbangcopy/backend/internal/storage"

	"github.com/google/uuid"
)

const storeKey = "learningContext"

// ContextDelimiter separates learning items when they are flattened into the
// single context block handed to the prompt builder.
const ContextDelimiter = "\n\n---\n\n"

var (
	ErrEmptyContent = errors.New("내용은 비워둘 수 없습니다.")
	ErrItemNotFound = errors.New("learning item not found")
)

// Service manages the persisted learning-item collection.
type Service interface {
	List() []domain.LearningItem
	Add(content string) (domain.LearningItem, error)
	Update(id, content string) (domain.LearningItem, error)
	Delete(id string) error
	// Context flattens all items, in insertion order, into one block.
	Context() string
}

type learningService struct {
	store storage.Store

	mu    sync.RWMutex
	items []domain.LearningItem
}

// NewLearningService loads the collection from the store.
func NewLearningService(store storage.Store) (Service, error) {
	s := &learningService{store: store}
	if err := store.Get(storeKey, &s.items); err != nil {
		return nil, fmt.Errorf("load learning items: %w", err)
	}
	return s, nil
}

func (s *learningService) List() []domain.LearningItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *learningService) Add(content string) (domain.LearningItem, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return domain.LearningItem{}, ErrEmptyContent
	}

	item := domain.LearningItem{ID: uuid.NewString(), Content: trimmed}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.items), item)
	if err := s.store.Set(storeKey, next); err != nil {
		return domain.LearningItem{}, fmt.Errorf("save learning items: %w", err)
	}
	s.items = next
	return item, nil
}

func (s *learningService) Update(id, content string) (domain.LearningItem, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		// Reject the edit; the stored item stays as it was.
		return domain.LearningItem{}, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.items, func(it domain.LearningItem) bool { return it.ID == id })
	if idx < 0 {
		return domain.LearningItem{}, ErrItemNotFound
	}

	next := slices.Clone(s.items)
	next[idx].Content = trimmed
	if err := s.store.Set(storeKey, next); err != nil {
		return domain.LearningItem{}, fmt.Errorf("save learning items: %w", err)
	}
	s.items = next
	return next[idx], nil
}

func (s *learningService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(s.items), func(it domain.LearningItem) bool { return it.ID == id })
	if len(next) == len(s.items) {
		return ErrItemNotFound
	}
	if err := s.store.Set(storeKey, next); err != nil {
		return fmt.Errorf("save learning items: %w", err)
	}
	s.items = next
	return nil
}

func (s *learningService) Context() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parts := make([]string, len(s.items))
	for i, it := range s.items {
		parts[i] = it.Content
	}
	return strings.Join(parts, ContextDelimiter)
}
