package application

import (
	"testing"

	"sangbangcopy/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewLearningService(storage.NewMemory())
	require.NoError(t, err)
	return svc
}

func TestAdd_ReadsBackUnchanged(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	before := len(svc.List())

	item, err := svc.Add("박씨상방은 한국 전통 공예 전문점입니다.")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	items := svc.List()
	require.Len(t, items, before+1)
	assert.Equal(t, "박씨상방은 한국 전통 공예 전문점입니다.", items[len(items)-1].Content)
}

func TestAdd_TrimsContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	item, err := svc.Add("  나전칠기는 자개를 붙여 만든 공예품입니다.  ")
	require.NoError(t, err)
	assert.Equal(t, "나전칠기는 자개를 붙여 만든 공예품입니다.", item.Content)
}

func TestAdd_RejectsEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Add("   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, svc.List())
}

func TestDelete_RemovesExactlyOnePreservingOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	first, err := svc.Add("첫 번째 자료")
	require.NoError(t, err)
	second, err := svc.Add("두 번째 자료")
	require.NoError(t, err)
	third, err := svc.Add("세 번째 자료")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(second.ID))

	items := svc.List()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, third.ID, items[1].ID)
}

func TestDelete_UnknownID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	assert.ErrorIs(t, svc.Delete("missing"), ErrItemNotFound)
}

func TestUpdate_EmptyEditLeavesItemUnchanged(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	item, err := svc.Add("원래 내용")
	require.NoError(t, err)

	_, err = svc.Update(item.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	items := svc.List()
	require.Len(t, items, 1)
	assert.Equal(t, "원래 내용", items[0].Content)
}

func TestUpdate_ReplacesContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	item, err := svc.Add("원래 내용")
	require.NoError(t, err)

	updated, err := svc.Update(item.ID, " 수정된 내용 ")
	require.NoError(t, err)
	assert.Equal(t, "수정된 내용", updated.Content)
	assert.Equal(t, item.ID, updated.ID)
}

func TestContext_JoinsInInsertionOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Add("하나")
	require.NoError(t, err)
	_, err = svc.Add("둘")
	require.NoError(t, err)

	assert.Equal(t, "하나"+ContextDelimiter+"둘", svc.Context())
}

func TestItems_SurviveReload(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	svc, err := NewLearningService(store)
	require.NoError(t, err)
	added, err := svc.Add("지속되는 자료")
	require.NoError(t, err)

	reloaded, err := NewLearningService(store)
	require.NoError(t, err)
	items := reloaded.List()
	require.Len(t, items, 1)
	assert.Equal(t, added, items[0])
}
