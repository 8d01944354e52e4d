package encouragements

import "strings"

// ContentFilterService screens encouragement messages before delivery.
type ContentFilterService struct {
	blockedWords []string
}

func NewContentFilterService(blockedWords []string) *ContentFilterService {
	return &ContentFilterService{blockedWords: blockedWords}
}

func (f *ContentFilterService) FilterContent(content string) (bool, string) {
	if f == nil {
		return false, ""
	}
	contentLower := strings.ToLower(content)
	for _, word := range f.blockedWords {
		if strings.Contains(contentLower, strings.ToLower(word)) {
			return true, "contains blocked word"
		}
	}
	return false, ""
}

// defaultBlockedWords is deliberately conservative; operators extend the list
// via SendService configuration.
var defaultBlockedWords = []string{
	"idiot",
	"stupid",
	"loser",
	"hate you",
	"kill yourself",
	"worthless",
}
