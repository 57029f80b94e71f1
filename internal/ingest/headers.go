package ingest

import "strings"

// Running header/footer detection. A line that opens or closes several
// pages of the same document is page furniture, not content.
const (
	headerSamplePages   = 10
	headerMinOccurrence = 3
	headerMinLen        = 5
)

// detectFurniture scans a sample of pages and returns the set of lines
// that repeat as the first or last line across pages.
func detectFurniture(pages []string) map[string]bool {
	counts := make(map[string]int)

	sampled := 0
	for _, page := range pages {
		if page == "" {
			continue
		}
		lines := strings.Split(page, "\n")
		first := strings.TrimSpace(lines[0])
		last := strings.TrimSpace(lines[len(lines)-1])
		if len(first) > headerMinLen {
			counts[first]++
		}
		if last != first && len(last) > headerMinLen {
			counts[last]++
		}
		sampled++
		if sampled >= headerSamplePages {
			break
		}
	}

	furniture := make(map[string]bool)
	for line, n := range counts {
		if n >= headerMinOccurrence {
			furniture[line] = true
		}
	}
	return furniture
}

// stripFurniture removes detected header/footer lines from a page.
func stripFurniture(page string, furniture map[string]bool) string {
	if len(furniture) == 0 {
		return page
	}
	lines := strings.Split(page, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if furniture[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
