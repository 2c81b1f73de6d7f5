package matcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

type mockLoader struct {
	loadFn func(ctx context.Context) (domain.Glossary, error)
}

func (m *mockLoader) Load(ctx context.Context) (domain.Glossary, error) {
	return m.loadFn(ctx)
}

type mockRecorder struct {
	mu    sync.Mutex
	calls map[string]int
}

func (m *mockRecorder) ObserveMatch(source string, matches int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[source] += matches
}

func staticLoader(g domain.Glossary) *mockLoader {
	return &mockLoader{loadFn: func(context.Context) (domain.Glossary, error) { return g, nil }}
}

func TestService_Match_FallbackBeforeReload(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), staticLoader(nil), nil, 0)

	res, err := svc.Match(context.Background(), "We live in a democracy", "")

	require.NoError(t, err)
	assert.False(t, svc.Ready())
	assert.Equal(t, domain.MatchSourceFallback, res.Source)
	assert.Equal(t, []string{"democracy"}, terms(res.Matches))
}

func TestService_Match_UsesGlossarySnapshot(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	g := domain.Glossary{domain.Entry{Word: "Anzac", Definition: "A soldier.", Translations: map[string]string{"zh-CN": "澳新军团"}}}
	svc := NewService(slog.Default(), staticLoader(g), rec, 0)
	require.NoError(t, svc.Reload(context.Background()))

	res, err := svc.Match(context.Background(), "Anzac Day and democracy", "zh-CN")

	require.NoError(t, err)
	assert.True(t, svc.Ready())
	assert.Equal(t, domain.MatchSourceGlossary, res.Source)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "澳新军团", *res.Matches[0].Translation)
	assert.Equal(t, 1, rec.calls["glossary"])
}

func TestService_Match_EmptyGlossaryFallsBack(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), staticLoader(domain.Glossary{}), nil, 0)
	require.NoError(t, svc.Reload(context.Background()))

	res, err := svc.Match(context.Background(), "the Constitution", "")

	require.NoError(t, err)
	assert.Equal(t, domain.MatchSourceFallback, res.Source)
	assert.Equal(t, []string{"constitution"}, terms(res.Matches))
}

func TestService_Match_RejectsEmptyText(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), staticLoader(nil), nil, 0)

	_, err := svc.Match(context.Background(), "   ", "fr")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Reload_KeepsPreviousSnapshotOnError(t *testing.T) {
	t.Parallel()

	calls := 0
	loader := &mockLoader{loadFn: func(context.Context) (domain.Glossary, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("read failed")
		}
		return domain.Glossary{domain.LegacyWord("Senate")}, nil
	}}
	svc := NewService(slog.Default(), loader, nil, 0)

	require.NoError(t, svc.Reload(context.Background()))
	loadedAt := svc.LoadedAt()
	require.Error(t, svc.Reload(context.Background()))

	assert.Equal(t, loadedAt, svc.LoadedAt())
	entries := svc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Senate", entries[0].Word)
	assert.Equal(t, domain.DefaultDefinition, entries[0].Definition)
}

func TestService_Match_Concurrent(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), staticLoader(domain.Glossary{domain.Entry{Word: "vote"}}), nil, 0)
	require.NoError(t, svc.Reload(context.Background()))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Match(context.Background(), "we vote", "")
			assert.NoError(t, err)
			assert.Len(t, res.Matches, 1)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, svc.Reload(context.Background()))
	}()
	wg.Wait()
}
