// Package pdf renders a resume document into a paginated PDF.
//
// The layout is deterministic: a fixed page geometry, a running vertical
// cursor, and greedy single-pass measure-then-place decisions with explicit
// page-break thresholds. Identical input produces identical bytes.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/resume-studio/internal/types"
)

// Filename returns the download name for a document's export, falling back
// to a generic name when the document has no name.
func Filename(doc *types.ResumeDocument) string {
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}

// Render lays the document out into one or more pages and returns the PDF
// bytes. Section order is fixed: Summary, Experience, Education, Skills.
// Projects is intentionally not emitted; it appears only in the interactive
// preview (reference-layout parity).
func Render(doc *types.ResumeDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	l := &layout{pdf: fpdf.New("P", "pt", "A4", "")}
	// Pin document metadata to the creation timestamp so output bytes are a
	// pure function of the document.
	l.pdf.SetCreationDate(doc.CreatedAt)
	l.pdf.SetModificationDate(doc.CreatedAt)
	l.pdf.SetTitle(doc.Name, true)
	l.pdf.SetAutoPageBreak(false, marginBottom)
	l.newPage()

	l.drawHeader(doc.PersonalDetails)
	l.drawContactLine(doc.PersonalDetails)

	if strings.TrimSpace(doc.Summary) != "" {
		l.drawSectionHeader("Summary")
		l.drawParagraph(doc.Summary)
		l.y += sectionSpace
	}
	if len(doc.Experience) > 0 {
		l.drawSectionHeader("Experience")
		for i, exp := range doc.Experience {
			if i > 0 {
				l.y += entryGap
			}
			l.ensureEntrySpace()
			l.drawEntryHeading(exp.Position, dateRange(exp.StartDate, exp.EndDate), exp.Company)
			l.drawBullets(exp.Description)
		}
		l.y += sectionSpace
	}
	if len(doc.Education) > 0 {
		l.drawSectionHeader("Education")
		for i, edu := range doc.Education {
			if i > 0 {
				l.y += entryGap
			}
			l.ensureEntrySpace()
			l.drawEntryHeading(edu.Degree, dateRange(edu.StartDate, edu.EndDate), edu.Institution)
			l.drawBullets(edu.Description)
		}
		l.y += sectionSpace
	}
	if len(doc.Skills) > 0 {
		l.drawSectionHeader("Skills")
		l.drawParagraph(strings.Join(doc.SkillNames(), ", "))
	}

	if l.pdf.Err() {
		return nil, fmt.Errorf("pdf generation failed: %w", l.pdf.Error())
	}
	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// layout carries the page state: the running vertical cursor y points at the
// next free position below everything drawn so far.
type layout struct {
	pdf *fpdf.Fpdf
	y   float64
}

func (l *layout) newPage() {
	l.pdf.AddPage()
	l.y = marginTop
}

func (l *layout) remaining() float64 {
	return pageHeight - marginBottom - l.y
}

// drawHeader draws the centered document title (the person's name). An empty
// name consumes no vertical space.
func (l *layout) drawHeader(pd types.PersonalDetails) {
	name := strings.TrimSpace(pd.Name)
	if name == "" {
		return
	}
	l.pdf.SetFont(fontFamily, "B", nameFontSize)
	width := l.pdf.GetStringWidth(name)
	l.y += nameFontSize
	l.pdf.Text((pageWidth-width)/2, l.y, name)
	l.y += headerGap
}

// drawContactLine draws the pipe-separated contact items as one horizontally
// centered unit, accumulating x-offsets left to right. Items with an Href
// get an interactive link region. No items means no line and no space.
func (l *layout) drawContactLine(pd types.PersonalDetails) {
	items := buildContactItems(pd)
	if len(items) == 0 {
		return
	}

	l.pdf.SetFont(fontFamily, "", contactFontSize)
	sepWidth := l.pdf.GetStringWidth(contactSeparator)

	total := 0.0
	for i, item := range items {
		if i > 0 {
			total += sepWidth
		}
		total += l.pdf.GetStringWidth(item.Text)
	}

	l.y += contactLineHeight
	x := (pageWidth - total) / 2
	for i, item := range items {
		if i > 0 {
			l.pdf.Text(x, l.y, contactSeparator)
			x += sepWidth
		}
		w := l.pdf.GetStringWidth(item.Text)
		l.pdf.Text(x, l.y, item.Text)
		if item.Href != "" {
			l.pdf.LinkString(x, l.y-contactFontSize, w, contactLineHeight, item.Href)
		}
		x += w
	}
	l.y += contactGap
}

// drawSectionHeader breaks the page first if the section would start too
// close to the bottom margin, so the header is never orphaned.
func (l *layout) drawSectionHeader(title string) {
	if l.remaining() < sectionBreakThreshold {
		l.newPage()
	}
	l.pdf.SetFont(fontFamily, "B", sectionFontSize)
	l.y += sectionFontSize
	l.pdf.Text(marginLeft, l.y, title)
	l.y += sectionGap
}

// ensureEntrySpace breaks the page before an entry when too little space
// remains. Checks are per entry only; an entry's own body may span a page
// break (see drawBullets).
func (l *layout) ensureEntrySpace() {
	if l.remaining() < entryBreakThreshold {
		l.newPage()
	}
}

// drawEntryHeading draws the bold subheading with a right-aligned date range
// on the same baseline, then the italic secondary line beneath it.
func (l *layout) drawEntryHeading(heading, dates, secondary string) {
	l.y += bodyFontSize
	l.pdf.SetFont(fontFamily, "B", bodyFontSize)
	l.pdf.Text(marginLeft, l.y, heading)
	if dates != "" {
		l.pdf.SetFont(fontFamily, "", bodyFontSize)
		w := l.pdf.GetStringWidth(dates)
		l.pdf.Text(pageWidth-marginRight-w, l.y, dates)
	}
	l.y += secondaryGap

	if secondary != "" {
		l.pdf.SetFont(fontFamily, "I", secondaryFontSize)
		l.y += secondaryFontSize
		l.pdf.Text(marginLeft, l.y, secondary)
	}
	l.y += secondaryGap
}

// drawBullets splits a newline-delimited description into bullets: each
// non-blank line becomes one hyphen-prefixed, word-wrapped block regardless
// of whether the source line already had a hyphen.
func (l *layout) drawBullets(description string) {
	bullets := BulletLines(description)
	if len(bullets) == 0 {
		return
	}
	l.pdf.SetFont(fontFamily, "", bodyFontSize)
	for _, bullet := range bullets {
		lines := l.pdf.SplitText(bullet, contentWidth-bulletIndent)
		blockHeight := float64(len(lines)) * bodyLineHeight
		if l.remaining() < blockHeight {
			l.newPage()
			l.pdf.SetFont(fontFamily, "", bodyFontSize)
		}
		for i, line := range lines {
			l.y += bodyLineHeight
			if i == 0 {
				l.pdf.Text(marginLeft, l.y, "-")
			}
			l.pdf.Text(marginLeft+bulletIndent, l.y, line)
		}
		l.y += bulletGap
	}
}

// drawParagraph draws body text as one wrapped block at full content width.
func (l *layout) drawParagraph(text string) {
	l.pdf.SetFont(fontFamily, "", bodyFontSize)
	lines := l.pdf.SplitText(strings.TrimSpace(text), contentWidth)
	for _, line := range lines {
		if l.remaining() < bodyLineHeight {
			l.newPage()
			l.pdf.SetFont(fontFamily, "", bodyFontSize)
		}
		l.y += bodyLineHeight
		l.pdf.Text(marginLeft, l.y, line)
	}
}

// BulletLines splits a newline-delimited description into cleaned bullet
// texts: blank lines are dropped and any existing hyphen or bullet prefix is
// stripped, so rendering can apply a uniform hyphen.
func BulletLines(description string) []string {
	var bullets []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(line, "- "), "-"), "•"))
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
	}
	return bullets
}

// dateRange joins the start and end dates for the right-aligned heading
// slot. A missing end date renders as "Present".
func dateRange(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - Present"
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}
