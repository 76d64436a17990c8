package compose

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

// truncateTokens caps text at maxTokens so an oversized encyclopedia extract
// cannot blow up the composition prompt.
func truncateTokens(text string, maxTokens int) string {
	if text == "" || maxTokens <= 0 {
		return ""
	}

	tokens := getTokenizer().Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return getTokenizer().Decode(tokens[:maxTokens])
}
