package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"sangbangcopy/backend/internal/features/copywriting/domain"
	"sangbangcopy/backend/internal/features/copywriting/infrastructure"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Validation errors, surfaced before any model call is issued.
var (
	ErrMissingURL          = errors.New("상품 URL을 입력해주세요.")
	ErrMissingText         = errors.New("분석할 텍스트를 입력해주세요.")
	ErrMissingImages       = errors.New("하나 이상의 이미지를 업로드해주세요.")
	ErrMissingFirstKeyword = errors.New("첫 번째 필수 단어는 반드시 입력해야 합니다.")
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSectionOutOfRange   = errors.New("section index out of range")
	errKoreanCopyStructure = errors.New("could not generate structured Korean copy")
	errEnglishStructure    = errors.New("could not generate structured English translation")
)

// IsValidationError reports whether err is a pre-call input rejection.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingURL) ||
		errors.Is(err, ErrMissingText) ||
		errors.Is(err, ErrMissingImages) ||
		errors.Is(err, ErrMissingFirstKeyword)
}

// LearningContextProvider supplies the flattened background-knowledge block.
type LearningContextProvider interface {
	Context() string
}

// TranslationRuleProvider supplies the flattened Korean→English glossary.
type TranslationRuleProvider interface {
	Rules() map[string]string
}

// Models names the two model tiers: Pro for extraction, copy generation and
// translation, Flash for single-title regeneration.
type Models struct {
	Pro   string
	Flash string
}

// GenerateRequest is the input to one full generation cycle.
type GenerateRequest struct {
	Input            domain.ProductInput
	RequiredKeywords []string
	BriefDescription string
}

// GenerationService sequences calls to the generative API and keeps the
// bilingual copy pair of each session mutually consistent: English is always
// derived from the latest Korean copy, never patched directly.
type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.CopySession, error)
	RegenerateMainTitle(ctx context.Context, sessionID string) (*domain.CopySession, error)
	RegenerateSectionTitle(ctx context.Context, sessionID string, index int) (*domain.CopySession, error)
	GetSession(sessionID string) (*domain.CopySession, error)
}

type generationService struct {
	ai       infrastructure.AIClient
	learning LearningContextProvider
	rules    TranslationRuleProvider
	models   Models

	mu       sync.Mutex
	sessions map[string]*copyState
}

// copyState is one session plus its regeneration marker. An empty marker
// means no regeneration is in flight.
type copyState struct {
	data         domain.CopySession
	regenerating string
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(ai infrastructure.AIClient, learning LearningContextProvider, rules TranslationRuleProvider, models Models) GenerationService {
	return &generationService{
		ai:       ai,
		learning: learning,
		rules:    rules,
		models:   models,
		sessions: make(map[string]*copyState),
	}
}

// Generate runs the full cycle: extract → Korean copy → English translation.
// Both copies are installed together at the end; a failure at any step leaves
// no partial session behind.
func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*domain.CopySession, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	keywords := filterKeywords(req.RequiredKeywords)

	extracted, err := s.extract(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	korean, err := s.generateKoreanCopy(ctx, extracted, keywords, req.BriefDescription)
	if err != nil {
		return nil, err
	}

	english, err := s.translateToEnglish(ctx, korean)
	if err != nil {
		return nil, err
	}

	session := domain.CopySession{
		ID:               uuid.NewString(),
		Korean:           &korean,
		English:          &english,
		RequiredKeywords: keywords,
		BriefDescription: req.BriefDescription,
	}

	s.mu.Lock()
	s.sessions[session.ID] = &copyState{data: session}
	s.mu.Unlock()

	log.Printf("generated copy session %s (%d sections)", session.ID, len(korean.Sections))
	return snapshot(session), nil
}

// RegenerateMainTitle replaces the Korean main title and then re-derives the
// entire English copy from the updated Korean copy. A translation failure
// after the Korean title has landed leaves a Korean/English mismatch until
// the next successful cycle.
func (s *generationService) RegenerateMainTitle(ctx context.Context, sessionID string) (*domain.CopySession, error) {
	snap, acquired, err := s.beginRegeneration(sessionID, "main-ko")
	if err != nil {
		return nil, err
	}
	if !acquired {
		// A regeneration is already pending; this trigger is ignored.
		return snap, nil
	}
	defer s.endRegeneration(sessionID)

	prompt := BuildMainTitlePrompt(*snap.Korean, LangKorean, snap.RequiredKeywords, snap.BriefDescription, nil)
	title, err := s.ai.GenerateText(ctx, s.models.Flash, prompt)
	if err != nil {
		return nil, fmt.Errorf("제목 재생성 실패: %w", err)
	}

	korean := snap.Korean.Clone()
	korean.MainTitle = stripWrappingQuotes(title)
	s.setKorean(sessionID, korean)

	english, err := s.translateToEnglish(ctx, korean)
	if err != nil {
		return nil, fmt.Errorf("제목 재생성 실패: %w", err)
	}
	s.setEnglish(sessionID, english)

	return s.GetSession(sessionID)
}

// RegenerateSectionTitle replaces one Korean section title copy-on-write and
// then re-derives the entire English copy, same as a main-title regeneration.
func (s *generationService) RegenerateSectionTitle(ctx context.Context, sessionID string, index int) (*domain.CopySession, error) {
	snap, acquired, err := s.beginRegeneration(sessionID, fmt.Sprintf("section-ko-%d", index))
	if err != nil {
		return nil, err
	}
	if !acquired {
		return snap, nil
	}
	defer s.endRegeneration(sessionID)

	if index < 0 || index >= len(snap.Korean.Sections) {
		return nil, ErrSectionOutOfRange
	}

	prompt := BuildSectionTitlePrompt(snap.Korean.Sections[index].Content, snap.Korean.MainTitle, LangKorean, nil)
	title, err := s.ai.GenerateText(ctx, s.models.Flash, prompt)
	if err != nil {
		return nil, fmt.Errorf("소제목 재생성 실패: %w", err)
	}

	korean := snap.Korean.Clone()
	korean.Sections[index].Title = stripWrappingQuotes(title)
	s.setKorean(sessionID, korean)

	english, err := s.translateToEnglish(ctx, korean)
	if err != nil {
		return nil, fmt.Errorf("소제목 재생성 실패: %w", err)
	}
	s.setEnglish(sessionID, english)

	return s.GetSession(sessionID)
}

// GetSession returns a snapshot of the session's current bilingual pair.
func (s *generationService) GetSession(sessionID string) (*domain.CopySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(state.data), nil
}

// extract dispatches on the input variant and produces one consolidated text
// block. The text variant is the identity and issues no call; URL and image
// variants issue exactly one call each.
func (s *generationService) extract(ctx context.Context, input domain.ProductInput) (string, error) {
	switch input.Type {
	case domain.InputURL:
		text, err := s.ai.GenerateText(ctx, s.models.Pro, BuildURLExtractionPrompt(input.URL))
		if err != nil {
			return "", fmt.Errorf("extract from url: %w", err)
		}
		return text, nil
	case domain.InputText:
		return input.Text, nil
	case domain.InputImages:
		text, err := s.ai.GenerateWithImages(ctx, s.models.Pro, BuildImageExtractionPrompt(), input.Images)
		if err != nil {
			return "", fmt.Errorf("extract from images: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("invalid input type %q", input.Type)
	}
}

func (s *generationService) generateKoreanCopy(ctx context.Context, extracted string, keywords []string, brief string) (domain.GeneratedCopy, error) {
	prompt := BuildKoreanCopyPrompt(extracted, s.learning.Context(), keywords, brief)
	raw, err := s.ai.GenerateStructured(ctx, s.models.Pro, prompt, copySchema())
	if err != nil {
		return domain.GeneratedCopy{}, fmt.Errorf("generate korean copy: %w", err)
	}
	copy, err := parseCopy(raw)
	if err != nil {
		log.Printf("failed to parse korean copy: %v", err)
		return domain.GeneratedCopy{}, errKoreanCopyStructure
	}
	return copy, nil
}

func (s *generationService) translateToEnglish(ctx context.Context, korean domain.GeneratedCopy) (domain.GeneratedCopy, error) {
	prompt := BuildTranslationPrompt(korean, s.rules.Rules())
	raw, err := s.ai.GenerateStructured(ctx, s.models.Pro, prompt, nil)
	if err != nil {
		return domain.GeneratedCopy{}, fmt.Errorf("translate to english: %w", err)
	}
	copy, err := parseCopy(raw)
	if err != nil {
		log.Printf("failed to parse english translation: %v", err)
		return domain.GeneratedCopy{}, errEnglishStructure
	}
	return copy, nil
}

// beginRegeneration marks the session as regenerating. When another
// regeneration is already pending it returns the current snapshot with
// acquired=false and the caller must treat the trigger as a no-op.
func (s *generationService) beginRegeneration(sessionID, marker string) (snap *domain.CopySession, acquired bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, false, ErrSessionNotFound
	}
	if state.regenerating != "" {
		return snapshot(state.data), false, nil
	}
	state.regenerating = marker
	return snapshot(state.data), true, nil
}

func (s *generationService) endRegeneration(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[sessionID]; ok {
		state.regenerating = ""
	}
}

func (s *generationService) setKorean(sessionID string, copy domain.GeneratedCopy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[sessionID]; ok {
		state.data.Korean = &copy
	}
}

func (s *generationService) setEnglish(sessionID string, copy domain.GeneratedCopy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[sessionID]; ok {
		state.data.English = &copy
	}
}

// validateRequest rejects unusable input before any external call. The
// keyword check runs last so a missing first keyword takes precedence over a
// missing source, matching the form's behavior.
func validateRequest(req GenerateRequest) error {
	var inputErr error
	switch req.Input.Type {
	case domain.InputURL:
		if strings.TrimSpace(req.Input.URL) == "" {
			inputErr = ErrMissingURL
		}
	case domain.InputText:
		if strings.TrimSpace(req.Input.Text) == "" {
			inputErr = ErrMissingText
		}
	case domain.InputImages:
		if len(req.Input.Images) == 0 {
			inputErr = ErrMissingImages
		}
	}

	if len(req.RequiredKeywords) == 0 || strings.TrimSpace(req.RequiredKeywords[0]) == "" {
		return ErrMissingFirstKeyword
	}
	return inputErr
}

// filterKeywords trims the keyword slots and drops the empty ones.
func filterKeywords(keywords []string) []string {
	filtered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}
	return filtered
}

// parseCopy decodes a model response into a GeneratedCopy, tolerating a
// markdown code fence around the JSON. A successful copy has at least one
// section.
func parseCopy(raw string) (domain.GeneratedCopy, error) {
	text := stripCodeFence(strings.TrimSpace(raw))

	var copy domain.GeneratedCopy
	if err := json.Unmarshal([]byte(text), &copy); err != nil {
		return domain.GeneratedCopy{}, fmt.Errorf("unmarshal copy: %w", err)
	}
	if len(copy.Sections) == 0 {
		return domain.GeneratedCopy{}, errors.New("copy has no sections")
	}
	return copy, nil
}

func stripCodeFence(text string) string {
	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	return text
}

// stripWrappingQuotes removes one pair of wrapping double quotes that models
// occasionally add around single-title answers.
func stripWrappingQuotes(title string) string {
	title = strings.TrimSpace(title)
	title = strings.TrimPrefix(title, `"`)
	title = strings.TrimSuffix(title, `"`)
	return title
}

// copySchema is the response shape requested from the model for copy
// generation; it mirrors GeneratedCopy exactly.
func copySchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"mainTitle": {
				Type:        jsonschema.String,
				Description: "A single, compelling, and representative title for the entire product.",
			},
			"sections": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title": {
							Type:        jsonschema.String,
							Description: "A direct, powerful, and intriguing title for the section.",
						},
						"content": {
							Type:        jsonschema.String,
							Description: "The simple, compelling, and easy-to-read marketing content for the section.",
						},
					},
					Required: []string{"title", "content"},
				},
			},
		},
		Required: []string{"mainTitle", "sections"},
	}
}

func snapshot(session domain.CopySession) *domain.CopySession {
	out := session
	if session.Korean != nil {
		ko := session.Korean.Clone()
		out.Korean = &ko
	}
	if session.English != nil {
		en := session.English.Clone()
		out.English = &en
	}
	return &out
}
