package ratingtype

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const descriptionWidth = 60

// Format renders a rating type for terminal display. The short form shows
// name, version and id; the complete form appends the description with each
// paragraph re-wrapped and indented.
func Format(rt RatingType, complete bool) string {
	bold := color.New(color.Bold)
	underline := color.New(color.Underline)

	formatted := fmt.Sprintf("%s: %s v%d\n\t(ID: %d)",
		bold.Sprint("Rating"), underline.Sprint(rt.Name), rt.Version, rt.RatingID)

	if complete {
		formatted += "\n" + wrapDescription(rt.Description)
	}

	return formatted
}

// wrapDescription fills each paragraph of the description to the display
// width, indenting every line with a tab. Paragraph breaks are preserved.
func wrapDescription(description string) string {
	paragraphs := strings.Split(description, "\n")
	wrapped := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		wrapped = append(wrapped, Fill(strings.TrimSpace(p), descriptionWidth, "\t"))
	}

	return strings.Join(wrapped, "\n")
}

// Fill greedily wraps a single paragraph at the given width, prefixing
// every output line with indent. Words longer than the width are emitted on
// their own line unbroken.
func Fill(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}

	var lines []string

	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, indent+line)
			line = word

			continue
		}

		line += " " + word
	}

	lines = append(lines, indent+line)

	return strings.Join(lines, "\n")
}
