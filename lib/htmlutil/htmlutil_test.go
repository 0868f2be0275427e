package htmlutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const fixture = `<html><body>
<h3 class="fh_course-id">CS 1A</h3>
<h3 class="fh_course-head">Intro   to
Programming</h3>
<div class="section">
	<p>Section: CS-1A-01</p>
	<span>Course Number (CRN): <b>12345</b></span>
</div>
<h3 class="fh_course-id">CS 1B</h3>
</body></html>`

func parse(t *testing.T, doc string) *html.Node {
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestCollapsedText(t *testing.T) {
	root := parse(t, fixture)
	heads := FindAllText(root, regexp.MustCompile(`Programming`))
	require.Len(t, heads, 1)
	require.Equal(t, "Intro to Programming", CollapsedText(heads[0].Parent))
}

func TestFindAllTextDocumentOrder(t *testing.T) {
	root := parse(t, fixture)
	nodes := FindAllText(root, regexp.MustCompile(`CS \d`))
	require.Len(t, nodes, 2)
	require.Equal(t, "CS 1A", strings.TrimSpace(nodes[0].Data))
	require.Equal(t, "CS 1B", strings.TrimSpace(nodes[1].Data))
}

func TestFindPreceding(t *testing.T) {
	root := parse(t, fixture)
	crn := FindAllText(root, regexp.MustCompile(`Course Number`))
	require.Len(t, crn, 1)

	isCourseId := func(n *html.Node) bool {
		return IsElement(n, "h3") && HasClass(n, "fh_course-id")
	}
	header := FindPreceding(crn[0].Parent, isCourseId, 80)
	require.NotNil(t, header)
	require.Equal(t, "CS 1A", CollapsedText(header))

	// a bound of one hop exhausts before reaching the header
	require.Nil(t, FindPreceding(crn[0].Parent, isCourseId, 1))
}

func TestFindFollowingStopsAtBoundary(t *testing.T) {
	root := parse(t, fixture)
	headers := FindAllText(root, regexp.MustCompile(`^CS 1A$`))
	require.Len(t, headers, 1)
	start := headers[0].Parent

	isHead := func(n *html.Node) bool {
		return IsElement(n, "h3") && HasClass(n, "fh_course-head")
	}
	isId := func(n *html.Node) bool {
		return IsElement(n, "h3") && HasClass(n, "fh_course-id")
	}

	title := FindFollowing(start, isHead, isId, 120)
	require.NotNil(t, title)
	require.Equal(t, "Intro to Programming", CollapsedText(title))

	// searching for a second course id stops at... the second course id,
	// so a pred that can only match beyond it comes back empty
	never := func(n *html.Node) bool { return IsElement(n, "table") }
	require.Nil(t, FindFollowing(start, never, isId, 0))
}

func TestAncestorWithClass(t *testing.T) {
	root := parse(t, fixture)
	crn := FindAllText(root, regexp.MustCompile(`Course Number`))
	require.Len(t, crn, 1)

	section := AncestorWithClass(crn[0].Parent, "section", "fh_sched-wrap")
	require.NotNil(t, section)
	require.True(t, HasClass(section, "section"))

	require.Nil(t, AncestorWithClass(crn[0].Parent, "nonexistent"))
}
