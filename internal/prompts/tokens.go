package prompts

import (
	"log"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkm     *tiktoken.Tiktoken
	tkmOnce sync.Once
)

func getTokenizer() *tiktoken.Tiktoken {
	tkmOnce.Do(func() {
		var err error
		tkm, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			log.Printf("Warning: failed to load tiktoken encoding: %v. Falling back to heuristic.", err)
		}
	})
	return tkm
}

// EstimateTokens estimates the token count of a prompt. It uses tiktoken
// when the encoding is available, otherwise a 1:4 character heuristic.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	if tokenizer := getTokenizer(); tokenizer != nil {
		return len(tokenizer.Encode(text, nil, nil))
	}
	return len(text) / 4
}
