package foothill

import (
	"context"
	"strings"

	"foothill-backend/lib/htmlutil"
	"foothill-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("scrapers/foothill")

// ClassRow is one offered section, keyed by CRN. Subject, Course, Title,
// Section and Crn are always non-empty; the remaining fields are "" when
// the page does not provide them.
type ClassRow struct {
	Quarter    string
	Subject    string
	Course     string
	Title      string
	Section    string
	Crn        string
	Instructor string
	DaysTime   string
	Room       string
	Modality   string
}

// Hop bounds for the backward/forward walks that stand in for real
// parent/child linkage between CRN, section label and course header.
// They were tuned against the actual nesting depth of the schedule page;
// do not adjust them per call.
const (
	sectionLabelHops  = 80
	titleSearchHops   = 120
	hintedHeaderScans = 600
)

func isCourseIdNode(n *html.Node) bool {
	return htmlutil.IsElement(n, "h3") && htmlutil.HasClass(n, "fh_course-id")
}

func isCourseHeadNode(n *html.Node) bool {
	return htmlutil.IsElement(n, "h3") && htmlutil.HasClass(n, "fh_course-head")
}

// resolveTitle walks forward from a course header until it either hits
// the next course header (no title for this course) or a title node. A
// title node whose text fails the title filter yields nothing, the
// search does not continue past it.
func resolveTitle(header *html.Node) string {
	node := htmlutil.FindFollowing(header, isCourseHeadNode, isCourseIdNode, titleSearchHops)
	if node == nil {
		return ""
	}
	text := htmlutil.CollapsedText(node)
	if !looksLikeTitle(text) {
		return ""
	}
	return text
}

// resolveContext locates the course header owning the node at start. With
// a hint it prefers the nearest preceding header whose identity matches
// exactly, scanning up to hintedHeaderScans headers back. Without one, or
// when the hint matches nothing in range, it settles for the single
// nearest preceding header; on densely nested pages that fallback can
// attribute a CRN to the wrong course, which is accepted leniency rather
// than an error.
func resolveContext(start *html.Node, subjectHint, courseHint string) (subject, course, title string) {
	if subjectHint != "" && courseHint != "" {
		scan := start
		for i := 0; i < hintedHeaderScans; i++ {
			scan = htmlutil.FindPreceding(scan, isCourseIdNode, 0)
			if scan == nil {
				break
			}
			s, c := parseCourseID(htmlutil.CollapsedText(scan))
			if s == subjectHint && c == courseHint {
				return s, c, resolveTitle(scan)
			}
		}
	}

	header := htmlutil.FindPreceding(start, isCourseIdNode, 0)
	if header != nil {
		s, c := parseCourseID(htmlutil.CollapsedText(header))
		return s, c, resolveTitle(header)
	}

	return "", "", ""
}

// findSectionCode looks backward from a CRN marker for the nearest text
// containing a section label, giving up after sectionLabelHops elements.
func findSectionCode(start *html.Node) string {
	code := ""
	htmlutil.FindPreceding(start, func(n *html.Node) bool {
		groups := sectionRegex.FindStringSubmatch(htmlutil.CollapsedText(n))
		if groups == nil {
			return false
		}
		code = groups[1]
		return true
	}, sectionLabelHops)
	return code
}

// extractMeetFields collects room, days/time and instructor across all
// meeting sub-rows of a section container. Rows with fewer than four
// cells are skipped whole. Values are deduped in first-seen order and
// joined with "; ".
func extractMeetFields(container *goquery.Selection) (room, daysTime, instructor string) {
	var rooms, daysTimes, instructors []string
	container.Find("div.meet-tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("div.meet-td")
		if cells.Length() < 4 {
			return
		}
		texts := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			texts = append(texts, htmlutil.CollapsedText(cell.Nodes[0]))
		})
		rooms = append(rooms, texts[1])
		daysTimes = append(daysTimes, texts[2])
		instructors = append(instructors, texts[3])
	})

	return textutil.JoinDeduped(rooms, "; "),
		textutil.JoinDeduped(daysTimes, "; "),
		textutil.JoinDeduped(instructors, "; ")
}

// findModality pulls the modality value out of a bolded "Modality" label
// inside the section container. The value is whatever follows the first
// colon of the label's containing element.
func findModality(container *goquery.Selection) string {
	modality := ""
	container.Find("strong").EachWithBreak(func(_ int, strong *goquery.Selection) bool {
		if !strings.HasPrefix(strings.TrimSpace(strong.Text()), "Modality") {
			return true
		}
		parent := strong.Parent()
		if len(parent.Nodes) == 0 {
			return false
		}
		text := htmlutil.CollapsedText(parent.Nodes[0])
		colon := strings.Index(text, ":")
		if colon < 0 {
			return false
		}
		modality = strings.TrimSpace(text[colon+1:])
		return false
	})
	return modality
}

// Extraction is the outcome of one pass over a parsed schedule document.
type Extraction struct {
	Rows []ClassRow
	// number of CRN label anchors located; zero usually means the page
	// wasn't a schedule at all and deserves a diagnostic upstream
	Anchors int
}

// ExtractClasses reconstructs one ClassRow per CRN marker from a parsed
// schedule page. Markers that cannot be resolved into an internally
// consistent row (missing subject, course, title or section) are dropped
// silently; malformed fragments are expected noise on this page. When
// dept is anything but "every", rows from other departments are dropped
// too. The walk is deterministic: markers are visited in document order
// and nothing here consults a clock or randomness.
func ExtractClasses(ctx context.Context, doc *goquery.Document, quarter, dept string) Extraction {
	ctx, span := tracer.Start(ctx, "ExtractClasses")
	defer span.End()

	root := doc.Get(0)
	anchors := htmlutil.FindAllText(root, crnLabelRegex)
	span.SetAttributes(attribute.Int("anchors", len(anchors)))

	deptCode, _, _ := strings.Cut(dept, "|")

	var rows []ClassRow
	for _, anchor := range anchors {
		// the CRN value usually lives in a sibling of the label, the
		// grandparent's text covers both
		crnSource := anchor.Parent
		if crnSource != nil && crnSource.Parent != nil {
			crnSource = crnSource.Parent
		}
		sourceText := anchor.Data
		if crnSource != nil {
			sourceText = htmlutil.CollapsedText(crnSource)
		}
		crnGroups := crnValueRegex.FindStringSubmatch(sourceText)
		if crnGroups == nil {
			continue
		}
		crn := crnGroups[1]

		section := findSectionCode(anchor.Parent)
		hintSubject, hintCourse := "", ""
		if section != "" {
			hintSubject, hintCourse = parseSectionHint(section)
		}

		subject, course, title := resolveContext(anchor.Parent, hintSubject, hintCourse)

		var room, daysTime, instructor, modality string
		sectionNode := htmlutil.AncestorWithClass(anchor.Parent, "section")
		if sectionNode == nil {
			sectionNode = htmlutil.AncestorWithClass(anchor.Parent, "fh_sched-wrap")
		}
		if sectionNode != nil {
			container := doc.FindNodes(sectionNode)
			room, daysTime, instructor = extractMeetFields(container)
			modality = findModality(container)
		}

		// the page may return cross-department rows, they are not kept
		if deptCode != "every" && subject != "" && subject != deptCode {
			continue
		}

		// hint backfill, never overriding resolver-derived values
		if (subject == "" || course == "") && section != "" &&
			hintSubject != "" && hintCourse != "" {
			if subject == "" {
				subject = hintSubject
			}
			if course == "" {
				course = hintCourse
			}
		}

		if subject == "" || course == "" || title == "" || section == "" {
			continue
		}

		rows = append(rows, ClassRow{
			Quarter:    quarter,
			Subject:    subject,
			Course:     course,
			Title:      title,
			Section:    section,
			Crn:        crn,
			Instructor: instructor,
			DaysTime:   daysTime,
			Room:       room,
			Modality:   modality,
		})
	}

	span.SetAttributes(attribute.Int("rows", len(rows)))
	return Extraction{Rows: rows, Anchors: len(anchors)}
}
