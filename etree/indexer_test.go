package etree_test

import (
	"testing"

	"github.com/fwojciec/lawdoc"
	"github.com/fwojciec/lawdoc/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billXML = `<?xml version="1.0" encoding="UTF-8"?>
<bill>
  <metadata>
    <congress>118th CONGRESS</congress>
    <session>2d Session</session>
    <official-title>An Act to expand agricultural programs.</official-title>
  </metadata>
  <legis-body>
    <title id="t1">
      <enum>I</enum>
      <header>Agricultural   Programs</header>
      <section id="s1">
        <enum>101.</enum>
        <header>Farm subsidies</header>
        <text>Farm subsidies shall be expanded for qualifying producers.</text>
        <subsection id="s1a">
          <enum>(a)</enum>
          <text>Eligibility requires continuous operation.</text>
        </subsection>
      </section>
      <section id="s2">
        <enum>102.</enum>
        <text>Rural development grants are authorized.</text>
      </section>
    </title>
  </legis-body>
</bill>`

func TestIndexer_Build(t *testing.T) {
	t.Parallel()

	snapshot, err := etree.NewIndexer(nil).Build([]byte(billXML))
	require.NoError(t, err)

	t.Run("sections", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, snapshot.Sections, 4)
		assert.Equal(t, []string{"t1", "s1", "s1a", "s2"}, snapshot.Order)
	})

	t.Run("heading title with collapsed whitespace", func(t *testing.T) {
		t.Parallel()

		title, err := snapshot.SectionByID("t1")
		require.NoError(t, err)
		assert.Equal(t, "title", title.Type)
		assert.Equal(t, "Agricultural Programs", title.Title)
	})

	t.Run("enum fallback when no heading", func(t *testing.T) {
		t.Parallel()

		section, err := snapshot.SectionByID("s2")
		require.NoError(t, err)
		assert.Equal(t, "102.", section.Title)
	})

	t.Run("content is direct text children only", func(t *testing.T) {
		t.Parallel()

		section, err := snapshot.SectionByID("s1")
		require.NoError(t, err)
		assert.Equal(t, "Farm subsidies shall be expanded for qualifying producers.", section.Content)
		assert.NotContains(t, section.Content, "continuous operation")
	})

	t.Run("full text includes descendants", func(t *testing.T) {
		t.Parallel()

		section, err := snapshot.SectionByID("s1")
		require.NoError(t, err)
		assert.Contains(t, section.FullText, "continuous operation")
	})

	t.Run("hierarchy skips unidentified wrappers", func(t *testing.T) {
		t.Parallel()

		// legis-body carries no id, so t1 is top-level and s1's parent is t1.
		title, err := snapshot.SectionByID("t1")
		require.NoError(t, err)
		assert.Empty(t, title.ParentID)
		assert.Equal(t, []string{"s1", "s2"}, title.Children)

		section, err := snapshot.SectionByID("s1")
		require.NoError(t, err)
		assert.Equal(t, "t1", section.ParentID)
		assert.Equal(t, []string{"s1a"}, section.Children)
	})

	t.Run("levels reflect nesting depth", func(t *testing.T) {
		t.Parallel()

		title, _ := snapshot.SectionByID("t1")
		sub, _ := snapshot.SectionByID("s1a")
		assert.Less(t, title.Level, sub.Level)
	})

	t.Run("table of contents lists top-level sections", func(t *testing.T) {
		t.Parallel()

		require.Len(t, snapshot.TableOfContents, 1)
		assert.Equal(t, "t1", snapshot.TableOfContents[0].ID)
		assert.Equal(t, "Agricultural Programs", snapshot.TableOfContents[0].Title)
	})

	t.Run("inverted index is deduplicated and sorted", func(t *testing.T) {
		t.Parallel()

		ids := snapshot.Index["subsidies"]
		assert.Equal(t, []string{"s1", "t1"}, ids)
	})

	t.Run("index omits stopwords and short tokens", func(t *testing.T) {
		t.Parallel()

		assert.NotContains(t, snapshot.Index, "for")
		assert.NotContains(t, snapshot.Index, "be")
	})

	t.Run("metadata", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "An Act to expand agricultural programs.", snapshot.Metadata.Title)
		assert.Equal(t, "118th CONGRESS", snapshot.Metadata.Congress)
		assert.Equal(t, "2d Session", snapshot.Metadata.Session)
	})
}

func TestIndexer_Build_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unparseable input", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewIndexer(nil).Build([]byte("<bill><unclosed></bill>"))

		require.Error(t, err)
		assert.Equal(t, lawdoc.EUNPROCESSABLE, lawdoc.ErrorCode(err))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewIndexer(nil).Build(nil)

		require.Error(t, err)
		assert.Equal(t, lawdoc.EUNPROCESSABLE, lawdoc.ErrorCode(err))
	})
}

func TestIndexer_Build_DuplicateID(t *testing.T) {
	t.Parallel()

	t.Run("first occurrence wins", func(t *testing.T) {
		t.Parallel()

		const xml = `<bill>
  <section id="s1"><header>First</header><text>first body text</text></section>
  <section id="s1"><header>Second</header><text>second body text</text></section>
</bill>`

		snapshot, err := etree.NewIndexer(nil).Build([]byte(xml))
		require.NoError(t, err)

		require.Len(t, snapshot.Sections, 1)
		section, err := snapshot.SectionByID("s1")
		require.NoError(t, err)
		assert.Equal(t, "First", section.Title)
	})

	t.Run("the whole duplicate subtree is skipped", func(t *testing.T) {
		t.Parallel()

		const xml = `<bill>
  <section id="s1"><header>First</header><text>first body text</text></section>
  <section id="s1">
    <header>Second</header>
    <subsection id="s1a"><text>nested under the duplicate</text></subsection>
  </section>
</bill>`

		snapshot, err := etree.NewIndexer(nil).Build([]byte(xml))
		require.NoError(t, err)

		require.Len(t, snapshot.Sections, 1)
		_, err = snapshot.SectionByID("s1a")
		require.Error(t, err)
		assert.Equal(t, lawdoc.ENOTFOUND, lawdoc.ErrorCode(err))

		section, err := snapshot.SectionByID("s1")
		require.NoError(t, err)
		assert.Empty(t, section.Children)
	})
}

func TestIndexer_Build_EmptySection(t *testing.T) {
	t.Parallel()

	const xml = `<bill><section id="s1"></section></bill>`

	snapshot, err := etree.NewIndexer(nil).Build([]byte(xml))
	require.NoError(t, err)

	section, err := snapshot.SectionByID("s1")
	require.NoError(t, err)
	assert.Empty(t, section.Title)
	assert.Empty(t, section.Content)
	assert.Empty(t, section.FullText)
}
