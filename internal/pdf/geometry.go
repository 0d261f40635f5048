package pdf

// Page geometry and layout constants, in points on an A4 page. The layout is
// a greedy single-pass flow: every value here feeds a deterministic
// measure-then-place decision, so changing one changes page breaks.
const (
	pageWidth  = 595.28
	pageHeight = 841.89

	marginTop    = 48.0
	marginBottom = 48.0
	marginLeft   = 48.0
	marginRight  = 48.0

	contentWidth = pageWidth - marginLeft - marginRight

	nameFontSize      = 22.0
	contactFontSize   = 10.0
	sectionFontSize   = 13.0
	bodyFontSize      = 10.5
	secondaryFontSize = 10.5

	bodyLineHeight    = 14.0
	contactLineHeight = 12.0

	headerGap     = 8.0  // below the name
	contactGap    = 18.0 // below the contact line
	sectionGap    = 10.0 // between section header and body
	sectionSpace  = 16.0 // between a section's end and the next header
	entryGap      = 10.0 // between entries within a section
	bulletGap     = 3.0  // between wrapped bullet blocks
	bulletIndent  = 12.0
	secondaryGap  = 4.0 // between subheading and italic secondary line
	contactSepPad = 0.0

	contactSeparator = " | "

	// sectionBreakThreshold forces a page break before a section header when
	// less vertical space remains, so a header is never orphaned from the
	// first line of its body.
	sectionBreakThreshold = 70.0

	// entryBreakThreshold forces a page break before an experience or
	// education entry. Checks are per entry, not mid-entry.
	entryBreakThreshold = 60.0
)

const fontFamily = "Helvetica"
