package corpus

import (
	"strings"

	"quotemash/internal/textutil"
)

// Rejection reasons reported by Admit.
const (
	ReasonEmptyText       = "empty_text"
	ReasonExcludedKeyword = "excluded_keyword"
)

// Filter configures corpus admission.
type Filter struct {
	// ExcludedKeywords drops entries whose audio URL contains any keyword.
	// Matching is case-sensitive because the scraper emits locale names in
	// title case (".../French_Tracer_-_Hello.ogg").
	ExcludedKeywords []string
}

// Rejection records why an entry was not admitted.
type Rejection struct {
	Entry   Entry
	Reason  string
	Keyword string
}

// Admit splits entries into those usable for matching and those rejected.
// Input order is preserved.
func Admit(entries []Entry, filter Filter) ([]Entry, []Rejection) {
	keywords := make([]string, 0, len(filter.ExcludedKeywords))
	for _, kw := range filter.ExcludedKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	admitted := make([]Entry, 0, len(entries))
	var rejected []Rejection
	for _, entry := range entries {
		if len(textutil.Normalize(entry.Text)) == 0 {
			rejected = append(rejected, Rejection{Entry: entry, Reason: ReasonEmptyText})
			continue
		}
		if kw, hit := containsAny(entry.AudioURL, keywords); hit {
			rejected = append(rejected, Rejection{Entry: entry, Reason: ReasonExcludedKeyword, Keyword: kw})
			continue
		}
		admitted = append(admitted, entry)
	}
	return admitted, rejected
}

func containsAny(value string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(value, kw) {
			return kw, true
		}
	}
	return "", false
}
