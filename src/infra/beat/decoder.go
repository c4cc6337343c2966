// Package beat estimates the tempo of an audio file: ffmpeg decodes
// the stream to mono PCM and a beat tracker picks candidate BPM values
// from the onset-energy autocorrelation.
package beat

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os/exec"
)

// Decoder turns an audio file into mono float samples.
type Decoder interface {
	Decode(ctx context.Context, path string) (samples []float64, sampleRate int, err error)
}

// FfmpegDecoder shells out to ffmpeg, which handles both containers.
type FfmpegDecoder struct {
	binary     string
	sampleRate int
}

// NewFfmpegDecoder creates a decoder around the given ffmpeg binary.
func NewFfmpegDecoder(binary string, sampleRate int) *FfmpegDecoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FfmpegDecoder{binary: binary, sampleRate: sampleRate}
}

// Decode extracts mono 16-bit PCM at the configured rate.
func (d *FfmpegDecoder) Decode(ctx context.Context, path string) ([]float64, int, error) {
	if _, err := exec.LookPath(d.binary); err != nil {
		return nil, 0, fmt.Errorf("ffmpeg not found, install it to enable tempo analysis: %w", err)
	}

	cmd := exec.CommandContext(ctx, d.binary,
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "s16le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", d.sampleRate),
		"-",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, 0, fmt.Errorf("ffmpeg failed to decode %s: %w", path, err)
	}

	raw := out.Bytes()
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float64(s) / 32768.0
	}
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("ffmpeg produced no samples for %s", path)
	}
	return samples, d.sampleRate, nil
}
