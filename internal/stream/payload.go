// Package stream holds the formats exchanged with the comparator and dedup
// collaborators: the JSON corpus payload, candidate pair lines and scored
// pair lines.
package stream

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the corpus handed to a comparator
type Payload struct {
	AllNames      []string            `json:"all_names"`
	WordToMatches map[string][]string `json:"word_to_matches"`
	PairToNames   map[string][]string `json:"pair_to_names"`
}

// WritePayload encodes p as JSON
func WritePayload(w io.Writer, p *Payload) error {
	if err := json.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	return nil
}

// ReadPayload decodes a JSON payload
func ReadPayload(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	if p.WordToMatches == nil {
		p.WordToMatches = map[string][]string{}
	}
	if p.PairToNames == nil {
		p.PairToNames = map[string][]string{}
	}
	return &p, nil
}
