package beat

import (
	"context"
	"fmt"
)

// Analyzer combines the decoder and the tracker into the tempo
// feature's collaborator: path in, estimated BPM out.
type Analyzer struct {
	decoder Decoder
	tracker Tracker
	minBPM  float64
	maxBPM  float64
}

// NewAnalyzer wires a decoder and a tracker with the BPM window.
func NewAnalyzer(decoder Decoder, tracker Tracker, minBPM, maxBPM float64) *Analyzer {
	return &Analyzer{decoder: decoder, tracker: tracker, minBPM: minBPM, maxBPM: maxBPM}
}

// EstimateTempo decodes the file and returns the best BPM candidate.
func (a *Analyzer) EstimateTempo(ctx context.Context, path string) (float64, error) {
	samples, rate, err := a.decoder.Decode(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("decode failed: %w", err)
	}
	candidates, err := a.tracker.Track(samples, rate, a.minBPM, a.maxBPM)
	if err != nil {
		return 0, fmt.Errorf("beat tracking failed: %w", err)
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no tempo candidates")
	}
	return candidates[0], nil
}
