// Package token provides model-token counting and budget-constrained text
// assembly for tool responses.
package token

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter counts model tokens in text. Implementations must be
// deterministic and safe for concurrent use; the pipeline shares one
// process-wide instance across invocations.
type Counter interface {
	Count(s string) int
}

// TiktokenCounter counts tokens with a tiktoken BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter builds a counter for the named encoding.
// cl100k_base is a good approximation across providers.
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: get encoding %q: %w", encoding, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

// Count returns the number of tokens in s.
func (c *TiktokenCounter) Count(s string) int {
	return len(c.enc.Encode(s, nil, nil))
}
