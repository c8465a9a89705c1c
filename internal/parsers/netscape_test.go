package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, doc string) []ParsedBookmark {
	t.Helper()
	return ParseBookmarks(strings.NewReader(doc))
}

func TestParseBookmarks_FolderAndTopLevel(t *testing.T) {
	doc := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
	<DT><H3>Reading</H3>
	<DL><p>
		<DT><A HREF="http://a.com">A</A>
		<DT><A HREF="http://b.com">B</A>
	</DL><p>
</DL><p>
<A HREF="http://c.com">C</A>`

	result := parse(t, doc)
	require.Len(t, result, 3)

	assert.Equal(t, "A", result[0].Title)
	assert.Equal(t, "http://a.com", result[0].URL)
	require.NotNil(t, result[0].Folder)
	assert.Equal(t, "Reading", *result[0].Folder)

	assert.Equal(t, "B", result[1].Title)
	require.NotNil(t, result[1].Folder)
	assert.Equal(t, "Reading", *result[1].Folder)

	assert.Equal(t, "C", result[2].Title)
	assert.Equal(t, "http://c.com", result[2].URL)
	assert.Nil(t, result[2].Folder)
}

func TestParseBookmarks_SchemeFilter(t *testing.T) {
	doc := `<DL>
		<DT><A HREF="javascript:void(0)">JS</A>
		<DT><A HREF="mailto:me@example.com">Mail</A>
		<DT><A HREF="/relative/path">Rel</A>
		<DT><A HREF="https://example.com">Real</A>
	</DL>`

	result := parse(t, doc)
	require.Len(t, result, 1)
	assert.Equal(t, "https://example.com", result[0].URL)
}

func TestParseBookmarks_EmptyTitleFallsBackToURL(t *testing.T) {
	doc := `<DL><DT><A HREF="https://example.com"></A></DL>`

	result := parse(t, doc)
	require.Len(t, result, 1)
	assert.Equal(t, "https://example.com", result[0].Title)
}

func TestParseBookmarks_MissingHref(t *testing.T) {
	doc := `<DL><DT><A>No destination</A></DL>`

	assert.Empty(t, parse(t, doc))
}

func TestParseBookmarks_DuplicateAcrossPasses(t *testing.T) {
	// The same URL inside a folder block and again at top level must
	// yield a single entry, attributed to the folder.
	doc := `<DL>
		<DT><H3>Work</H3>
		<DL><DT><A HREF="http://dup.com">Dup</A></DL>
	</DL>
	<A HREF="http://dup.com">Dup again</A>`

	result := parse(t, doc)
	require.Len(t, result, 1)
	require.NotNil(t, result[0].Folder)
	assert.Equal(t, "Work", *result[0].Folder)
}

func TestParseBookmarks_EmptyDocument(t *testing.T) {
	assert.Empty(t, parse(t, ""))
}

func TestParseBookmarks_FolderNamesVerbatim(t *testing.T) {
	// Headings differing only in whitespace are distinct folders.
	doc := `<DL>
		<DT><H3>Work</H3>
		<DL><DT><A HREF="http://a.com">A</A></DL>
		<DT><H3>Work </H3>
		<DL><DT><A HREF="http://b.com">B</A></DL>
	</DL>`

	result := parse(t, doc)
	require.Len(t, result, 2)
	assert.Equal(t, "Work", *result[0].Folder)
	assert.Equal(t, "Work ", *result[1].Folder)
}

func TestParseBookmarks_BlockWithoutHeadingInheritsOpenFolder(t *testing.T) {
	// A list block with no heading of its own belongs to the folder
	// that is currently open.
	doc := `<DL>
		<DT><H3>News</H3>
		<DL><DT><A HREF="http://a.com">A</A></DL>
		<DL><DT><A HREF="http://b.com">B</A></DL>
	</DL>`

	result := parse(t, doc)
	require.Len(t, result, 2)
	require.NotNil(t, result[1].Folder)
	assert.Equal(t, "News", *result[1].Folder)
}

func TestParseBookmarks_LinksBeforeAnyHeadingAreUnfiled(t *testing.T) {
	doc := `<DL>
		<DT><A HREF="http://a.com">A</A>
		<DT><H3>Later</H3>
		<DL><DT><A HREF="http://b.com">B</A></DL>
	</DL>`

	result := parse(t, doc)
	require.Len(t, result, 2)
	assert.Nil(t, result[0].Folder)
	require.NotNil(t, result[1].Folder)
	assert.Equal(t, "Later", *result[1].Folder)
}

func TestParseBookmarks_NestedFolders(t *testing.T) {
	// Nested folders flatten to the innermost heading seen so far.
	doc := `<DL>
		<DT><H3>Outer</H3>
		<DL>
			<DT><A HREF="http://outer.com">O</A>
			<DT><H3>Inner</H3>
			<DL><DT><A HREF="http://inner.com">I</A></DL>
		</DL>
	</DL>`

	result := parse(t, doc)
	require.Len(t, result, 2)
	assert.Equal(t, "Outer", *result[0].Folder)
	assert.Equal(t, "Inner", *result[1].Folder)
}

func TestParseBookmarks_MalformedMarkup(t *testing.T) {
	// Typical real-world export: unclosed DT and stray <p> tags.
	doc := `<DL><p>
		<DT><H3>Stuff</H3>
		<DL><p>
			<DT><A HREF="http://x.com">X
			<DT><A HREF="http://y.com">Y`

	result := parse(t, doc)
	require.Len(t, result, 2)
	assert.Equal(t, "http://x.com", result[0].URL)
	assert.Equal(t, "http://y.com", result[1].URL)
}
