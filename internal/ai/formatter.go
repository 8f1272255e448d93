package ai

import "strings"

// textSections are the canonical headers guaranteed to be present in a
// formatted symptom analysis, in presentation order.
var textSections = []string{
	"Possible Conditions:",
	"Key Symptoms Analysis:",
	"Risk Factors:",
	"Recommended Next Steps:",
	"Warning Signs:",
	"Preventive Measures:",
}

// imageSections maps each canonical image-analysis header to its fixed
// rank. Sections are always emitted in rank order regardless of the
// order the model produced them in.
var imageSections = []struct {
	Title string
	Order int
}{
	{"Visual Findings:", 1},
	{"Potential Diagnoses:", 2},
	{"Recommended Medical Specialties:", 3},
	{"Important Notes:", 4},
}

// Section is one segmented piece of an image analysis.
type Section struct {
	Title   string
	Content string
	Order   int
}

// Segmenter normalizes and segments raw model output. It exists as an
// interface so the string-matching strategy can be swapped or faked in
// tests without touching the model call.
type Segmenter interface {
	FormatAnalysis(text string) string
	SplitImageAnalysis(text string) []Section
}

// HeaderSegmenter is the default Segmenter: best-effort string matching
// against the canonical headers. It does not validate section order or
// bodies; the model output is untrusted and this must never hard-fail.
type HeaderSegmenter struct{}

// FormatAnalysis strips markdown emphasis markers and rewrites colon-less
// canonical headers to their canonical form. Already-canonical text passes
// through unchanged.
func (HeaderSegmenter) FormatAnalysis(text string) string {
	formatted := strings.ReplaceAll(text, "*", "")
	formatted = strings.ReplaceAll(formatted, "•", "")

	for _, section := range textSections {
		if strings.Contains(formatted, section) {
			continue
		}
		base := strings.TrimSuffix(section, ":")
		formatted = strings.Replace(formatted, base, section, 1)
	}
	return formatted
}

// SplitImageAnalysis scans the analysis line by line and groups content
// under the canonical image headers. Header lines themselves and lines
// before the first recognized header are discarded. A repeated header
// re-opens its section, so content keeps accumulating in input order.
// Headers that never appear yield no section.
func (HeaderSegmenter) SplitImageAnalysis(text string) []Section {
	content := make(map[string]*strings.Builder, len(imageSections))
	for _, s := range imageSections {
		content[s.Title] = &strings.Builder{}
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		matched := false
		for _, s := range imageSections {
			if strings.HasPrefix(trimmed, s.Title) {
				current = s.Title
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if current != "" && trimmed != "" {
			content[current].WriteString(line)
			content[current].WriteString("\n")
		}
	}

	var sections []Section
	for _, s := range imageSections {
		body := strings.TrimSpace(content[s.Title].String())
		if body == "" {
			continue
		}
		sections = append(sections, Section{
			Title:   s.Title,
			Content: body,
			Order:   s.Order,
		})
	}
	return sections
}
