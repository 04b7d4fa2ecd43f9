package docstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/content"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "docs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clock := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func linkedDoc() *content.Content {
	c := content.FromBlocks(
		content.NewBlock("a", content.BlockHeaderOne, "Notes"),
		content.NewBlock("b", "", "see site"),
	)
	c = content.ApplyInlineStyle(c, c.Select("b", 0, "b", 3), content.StyleBold)
	c, key := c.CreateEntity("LINK", content.Mutable, map[string]any{"url": "https://x.io"})
	return content.ApplyEntity(c, c.Select("b", 4, "b", 8), key)
}

func TestCreateLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	id, err := s.Create(ctx, "notes", linkedDoc())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, doc, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "notes", doc.Title)
	assert.Equal(t, 1, doc.Rev)
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)

	if diff := cmp.Diff(content.ToRaw(linkedDoc()), content.ToRaw(got)); diff != "" {
		t.Fatalf("loaded content mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_SkipsUnchangedContent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	id, err := s.Create(ctx, "notes", linkedDoc())
	require.NoError(t, err)

	rev, saved, err := s.Save(ctx, id, linkedDoc())
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 1, rev)

	edited := content.InsertText(linkedDoc(), content.Collapsed("a", 5), "!", content.StyleSet{}, content.NoEntity)
	rev, saved, err = s.Save(ctx, id, edited)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 2, rev)

	got, doc, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Rev)
	assert.True(t, doc.UpdatedAt.After(doc.CreatedAt))
	assert.Equal(t, "Notes!", got.FirstBlock().Text())
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, _, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = s.Save(ctx, "missing", linkedDoc())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	first, err := s.Create(ctx, "first", content.FromText("one"))
	require.NoError(t, err)
	second, err := s.Create(ctx, "second", content.FromText("two"))
	require.NoError(t, err)
	_, _, err = s.Save(ctx, first, content.FromText("one more"))
	require.NoError(t, err)

	docs, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first, docs[0].ID)
	assert.Equal(t, 2, docs[0].Rev)
	assert.Equal(t, second, docs[1].ID)
	assert.Equal(t, 1, docs[1].Rev)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	id, err := s.Create(context.Background(), "scratch", content.FromText("x"))
	require.NoError(t, err)
	_, doc, err := s.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "scratch", doc.Title)
}
