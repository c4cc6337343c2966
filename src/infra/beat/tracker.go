package beat

import (
	"fmt"
	"math"
)

const (
	windowSize = 1024
	hopSize    = 512
)

// Tracker turns decoded samples into candidate tempo values, best
// candidate first.
type Tracker interface {
	Track(samples []float64, sampleRate int, minBPM, maxBPM float64) ([]float64, error)
}

// OnsetTracker estimates tempo from the autocorrelation of the
// onset-energy envelope: the lag with the strongest self-similarity
// inside the BPM window is the beat period.
type OnsetTracker struct{}

// NewOnsetTracker creates a new tracker.
func NewOnsetTracker() *OnsetTracker {
	return &OnsetTracker{}
}

func (t *OnsetTracker) Track(samples []float64, sampleRate int, minBPM, maxBPM float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	flux := onsetFlux(samples)
	if len(flux) < 8 {
		return nil, fmt.Errorf("signal too short for tempo analysis")
	}

	frameRate := float64(sampleRate) / hopSize
	minLag := int(frameRate * 60.0 / maxBPM)
	maxLag := int(frameRate * 60.0 / minBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(flux) {
		maxLag = len(flux) - 1
	}
	if minLag >= maxLag {
		return nil, fmt.Errorf("signal too short for tempo window %.0f-%.0f", minBPM, maxBPM)
	}

	type scored struct {
		lag   int
		score float64
	}
	var best []scored
	for lag := minLag; lag <= maxLag; lag++ {
		var score float64
		for i := 0; i+lag < len(flux); i++ {
			score += flux[i] * flux[i+lag]
		}
		score /= float64(len(flux) - lag)
		best = append(best, scored{lag: lag, score: score})
	}

	// Partial selection sort: the top three lags are enough candidates.
	top := 3
	if top > len(best) {
		top = len(best)
	}
	for i := 0; i < top; i++ {
		for j := i + 1; j < len(best); j++ {
			if best[j].score > best[i].score {
				best[i], best[j] = best[j], best[i]
			}
		}
	}

	if best[0].score <= 0 {
		return nil, fmt.Errorf("no periodicity found")
	}

	candidates := make([]float64, 0, top)
	for i := 0; i < top; i++ {
		candidates = append(candidates, 60.0*frameRate/float64(best[i].lag))
	}
	return candidates, nil
}

// onsetFlux computes the positive half-wave rectified energy difference
// between consecutive analysis windows.
func onsetFlux(samples []float64) []float64 {
	if len(samples) < windowSize {
		return nil
	}
	var energies []float64
	for start := 0; start+windowSize <= len(samples); start += hopSize {
		var e float64
		for _, s := range samples[start : start+windowSize] {
			e += s * s
		}
		energies = append(energies, e/windowSize)
	}

	flux := make([]float64, 0, len(energies))
	var mean float64
	for i := 1; i < len(energies); i++ {
		d := energies[i] - energies[i-1]
		if d < 0 {
			d = 0
		}
		flux = append(flux, d)
		mean += d
	}
	if len(flux) == 0 {
		return nil
	}

	// Remove the mean so silence does not correlate with itself.
	mean /= float64(len(flux))
	for i := range flux {
		flux[i] -= mean
		if math.IsNaN(flux[i]) {
			flux[i] = 0
		}
	}
	return flux
}
