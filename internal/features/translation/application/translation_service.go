package application

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"sangbangcopy/backend/internal/features/translation/domain"
	"sangbangcopy/backend/internal/storage"

	"github.com/google/uuid"
)

const storeKey = "customTranslations"

var (
	ErrEmptyTerm    = errors.New("한글과 영어 단어를 모두 입력해주세요.")
	ErrRuleNotFound = errors.New("translation rule not found")
)

// Service manages the persisted Korean→English glossary.
type Service interface {
	List() []domain.CustomTranslation
	Add(korean, english string) (domain.CustomTranslation, error)
	Delete(id string) error
	// Rules flattens the collection into a literal substitution map. When two
	// rules share a Korean key the later one wins.
	Rules() map[string]string
}

type translationService struct {
	store storage.Store

	mu    sync.RWMutex
	rules []domain.CustomTranslation
}

// NewTranslationService loads the collection from the store.
func NewTranslationService(store storage.Store) (Service, error) {
	s := &translationService{store: store}
	if err := store.Get(storeKey, &s.rules); err != nil {
		return nil, fmt.Errorf("load translation rules: %w", err)
	}
	return s, nil
}

func (s *translationService) List() []domain.CustomTranslation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rules)
}

func (s *translationService) Add(korean, english string) (domain.CustomTranslation, error) {
	ko := strings.TrimSpace(korean)
	en := strings.TrimSpace(english)
	if ko == "" || en == "" {
		return domain.CustomTranslation{}, ErrEmptyTerm
	}

	rule := domain.CustomTranslation{ID: uuid.NewString(), Korean: ko, English: en}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.rules), rule)
	if err := s.store.Set(storeKey, next); err != nil {
		return domain.CustomTranslation{}, fmt.Errorf("save translation rules: %w", err)
	}
	s.rules = next
	return rule, nil
}

func (s *translationService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(s.rules), func(r domain.CustomTranslation) bool { return r.ID == id })
	if len(next) == len(s.rules) {
		return ErrRuleNotFound
	}
	if err := s.store.Set(storeKey, next); err != nil {
		return fmt.Errorf("save translation rules: %w", err)
	}
	s.rules = next
	return nil
}

func (s *translationService) Rules() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rules := make(map[string]string, len(s.rules))
	for _, r := range s.rules {
		rules[r.Korean] = r.English
	}
	return rules
}
