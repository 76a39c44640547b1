package application

import (
	"testing"

	"sangbangcopy/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewTranslationService(storage.NewMemory())
	require.NoError(t, err)
	return svc
}

func TestAdd_AppearsInRules(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	rule, err := svc.Add(" 당초 ", " dangcho ")
	require.NoError(t, err)
	assert.Equal(t, "당초", rule.Korean)
	assert.Equal(t, "dangcho", rule.English)

	assert.Equal(t, map[string]string{"당초": "dangcho"}, svc.Rules())
}

func TestAdd_RejectsEmptyTerms(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.Add("  ", "dangcho")
	assert.ErrorIs(t, err, ErrEmptyTerm)
	_, err = svc.Add("당초", "   ")
	assert.ErrorIs(t, err, ErrEmptyTerm)
	assert.Empty(t, svc.List())
}

func TestRules_LastWriteWinsOnDuplicateKorean(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Add("자개", "mother-of-pearl")
	require.NoError(t, err)
	_, err = svc.Add("자개", "jagae")
	require.NoError(t, err)

	// Both rules are kept in the list; flattening collapses to the later one.
	assert.Len(t, svc.List(), 2)
	assert.Equal(t, "jagae", svc.Rules()["자개"])
}

func TestDelete_RemovesRule(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	rule, err := svc.Add("소반", "soban")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(rule.ID))
	assert.Empty(t, svc.List())
	assert.ErrorIs(t, svc.Delete(rule.ID), ErrRuleNotFound)
}

func TestRules_SurviveReload(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	svc, err := NewTranslationService(store)
	require.NoError(t, err)
	_, err = svc.Add("나전칠기", "najeonchilgi")
	require.NoError(t, err)

	reloaded, err := NewTranslationService(store)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"나전칠기": "najeonchilgi"}, reloaded.Rules())
}
