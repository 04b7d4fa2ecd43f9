package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/state"
)

type linkData map[string]any

func TestUpsert_CaretWithoutTextIsNoOp(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "hello"))
	caret(c, "a", 2)
	before := c.State()

	NewEntity[linkData](c, "LINK").Upsert(linkData{"url": "https://example.com"}, "")

	assert.Same(t, before, c.State())
	assert.Empty(t, c.State().Content().EntityKeys())
	for _, k := range entitiesOf(c.State().Content().BlockForKey("a")) {
		assert.Equal(t, content.NoEntity, k)
	}
}

func TestUpsert_CaretWithTextAttachesInsertedText(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "ab"))
	caret(c, "a", 1)

	NewEntity[linkData](c, "LINK").Upsert(linkData{"url": "u"}, "X")

	s := c.State()
	b := s.Content().BlockForKey("a")
	require.Equal(t, "aXb", b.Text())
	key := s.Content().LastCreatedEntityKey()
	require.NotEqual(t, content.NoEntity, key)
	assert.Equal(t, []content.EntityKey{content.NoEntity, key, content.NoEntity}, entitiesOf(b))
	assert.Equal(t, state.ChangeInsertCharacters, s.LastChangeType())
	assert.Equal(t, content.Collapsed("a", 2), s.Selection())

	e, ok := s.Content().Entity(key)
	require.True(t, ok)
	assert.Equal(t, "LINK", e.Type)
	assert.Equal(t, content.Mutable, e.Mutability)
}

func TestUpsert_RangeCreatesAndAttaches(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "go to site"), content.NewBlock("b", "", "more"))
	selectRange(c, "a", 6, "b", 2)
	link := NewEntity[linkData](c, "LINK", WithMutability(content.Immutable))

	link.Upsert(linkData{"url": "https://example.com"}, "ignored")

	s := c.State()
	key := s.Content().LastCreatedEntityKey()
	n := content.NoEntity
	assert.Equal(t, []content.EntityKey{n, n, n, n, n, n, key, key, key, key}, entitiesOf(s.Content().BlockForKey("a")))
	assert.Equal(t, []content.EntityKey{key, key, n, n}, entitiesOf(s.Content().BlockForKey("b")))
	assert.Equal(t, state.ChangeApplyEntity, s.LastChangeType())
	assert.Equal(t, "go to site\nmore", s.Content().PlainText())

	e, _ := s.Content().Entity(key)
	assert.Equal(t, content.Immutable, e.Mutability)

	data, ok := link.Data()
	require.True(t, ok)
	assert.Equal(t, linkData{"url": "https://example.com"}, data)
	assert.True(t, link.IsRangeSelected())
}

func TestUpsert_RangeReplacesOtherEntity(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "abcd"))
	selectRange(c, "a", 0, "a", 4)
	NewEntity[linkData](c, "MENTION").Upsert(linkData{"id": 1}, "")
	mention := c.State().Content().LastCreatedEntityKey()

	// The selection starts on a mention, so a LINK upsert creates.
	selectRange(c, "a", 1, "a", 3)
	NewEntity[linkData](c, "LINK").Upsert(linkData{"url": "u"}, "")
	link := c.State().Content().LastCreatedEntityKey()

	require.NotEqual(t, mention, link)
	assert.Equal(t, []content.EntityKey{mention, link, link, mention}, entitiesOf(c.State().Content().BlockForKey("a")))
}

func TestUpsert_ExistingMergesData(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "site"))
	selectRange(c, "a", 0, "a", 4)
	link := NewEntity[linkData](c, "LINK")

	link.Upsert(linkData{"url": "https://old.example", "title": "Old"}, "")
	key := c.State().Content().LastCreatedEntityKey()
	sel := c.State().Selection()

	link.Upsert(linkData{"url": "https://new.example", "rel": "nofollow"}, "")

	s := c.State()
	assert.Equal(t, key, s.Content().LastCreatedEntityKey(), "edit must not create")
	assert.Len(t, s.Content().EntityKeys(), 1)
	assert.Equal(t, sel, s.Selection())
	assert.Equal(t, state.ChangeApplyEntity, s.LastChangeType())

	data, ok := link.Data()
	require.True(t, ok)
	assert.Equal(t, linkData{"url": "https://new.example", "title": "Old", "rel": "nofollow"}, data)

	c.Update(state.Undo)
	data, _ = link.Data()
	assert.Equal(t, linkData{"url": "https://old.example", "title": "Old"}, data)
}

func TestUpsert_RangeWithoutCharactersIsNoOp(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "ab"), content.NewBlock("b", "", "cd"))
	selectRange(c, "a", 2, "b", 0)
	before := c.State()

	NewEntity[linkData](c, "LINK").Upsert(linkData{"url": "u"}, "")

	s := c.State()
	assert.Same(t, before, s)
	assert.Equal(t, before.Selection(), s.Selection())
	assert.False(t, s.CanUndo())
	assert.Empty(t, s.Content().EntityKeys())
}

func TestUpsert_IdenticalDataIsNoOp(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "site"))
	selectRange(c, "a", 0, "a", 4)
	link := NewEntity[linkData](c, "LINK")
	link.Upsert(linkData{"url": "u", "tags": []string{"x"}}, "")
	before := c.State()

	link.Upsert(linkData{"url": "u", "tags": []string{"x"}}, "")
	link.Edit(linkData{"url": "u"})

	assert.Same(t, before, c.State())
	undone := state.Undo(c.State())
	assert.False(t, undone.CanUndo(), "only the create is an undo step")
	assert.Empty(t, undone.Content().EntityKeys())
}

func TestEdit_WithoutEntityIsNoOp(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "plain"))
	selectRange(c, "a", 0, "a", 5)
	before := c.State()
	NewEntity[linkData](c, "LINK").Edit(linkData{"url": "u"})
	assert.Same(t, before, c.State())
}

func TestRemove(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "site"))
	link := NewEntity[linkData](c, "LINK")

	selectRange(c, "a", 0, "a", 4)
	before := c.State()
	link.Remove()
	assert.Same(t, before, c.State(), "nothing to remove")

	link.Upsert(linkData{"url": "u"}, "")
	key := c.State().Content().LastCreatedEntityKey()

	caret(c, "a", 2)
	before = c.State()
	link.Remove()
	assert.Same(t, before, c.State(), "caret cannot remove")

	selectRange(c, "a", 0, "a", 4)
	NewEntity[linkData](c, "MENTION").Remove()
	require.Equal(t, key, SelectedEntityKey(c.State()), "other type must not remove")

	link.Remove()
	s := c.State()
	n := content.NoEntity
	assert.Equal(t, []content.EntityKey{n, n, n, n}, entitiesOf(s.Content().BlockForKey("a")))
	e, ok := s.Content().Entity(key)
	require.True(t, ok, "record stays in the table")
	assert.Equal(t, "u", e.Data["url"])
	assert.Equal(t, state.ChangeApplyEntity, s.LastChangeType())

	_, ok = link.Data()
	assert.False(t, ok)
}

func TestEntity_UsesLiveSelection(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "one two"))
	link := NewEntity[linkData](c, "LINK")

	selectRange(c, "a", 0, "a", 3)
	link.Create(linkData{"url": "1"}, "")
	first := c.State().Content().LastCreatedEntityKey()

	// The binding was created before these selection changes.
	selectRange(c, "a", 4, "a", 7)
	link.Upsert(linkData{"url": "2"}, "")
	second := c.State().Content().LastCreatedEntityKey()
	require.NotEqual(t, first, second)

	selectRange(c, "a", 0, "a", 3)
	link.Edit(linkData{"title": "first"})
	data, ok := link.Data()
	require.True(t, ok)
	assert.Equal(t, linkData{"url": "1", "title": "first"}, data)

	e, _ := c.State().Content().Entity(second)
	assert.Equal(t, map[string]any{"url": "2"}, e.Data)
}

func TestEntity_DerivedReads(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "site"))
	link := NewEntity[linkData](c, "LINK")
	assert.Equal(t, "LINK", link.Type())
	assert.False(t, link.IsRangeSelected())
	_, ok := link.Data()
	assert.False(t, ok)

	selectRange(c, "a", 0, "a", 4)
	assert.True(t, link.IsRangeSelected())
	_, ok = link.Data()
	assert.False(t, ok)

	link.Upsert(linkData{"url": "u"}, "")
	first, ok := link.Data()
	require.True(t, ok)
	again, _ := link.Data()
	assert.Equal(t, first, again)

	caret(c, "a", 2)
	_, ok = link.Data()
	assert.False(t, ok, "a caret never selects an entity")
}

func TestEntity_LogsBranches(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := newContainer(content.NewBlock("a", "", "site"))
	link := NewEntity[linkData](c, "LINK", WithLogger(zap.New(core).Sugar()))

	link.Upsert(linkData{"url": "u"}, "")
	selectRange(c, "a", 0, "a", 4)
	link.Upsert(linkData{"url": "u"}, "")
	link.Upsert(linkData{"url": "v"}, "")
	link.Remove()
	link.Remove()

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{
		"entity create skipped",
		"entity create on range",
		"entity edit",
		"entity remove",
		"entity remove skipped",
	}, got)
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	c := newContainer(content.NewBlock("a", "", "x"))
	link := NewEntity[linkData](c, "LINK", WithLogger(nil))
	assert.NotPanics(t, func() { link.Remove() })
}
