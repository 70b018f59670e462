package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthTonePattern_Length(t *testing.T) {
	pattern := SynthTonePattern()

	// 700ms of 16-bit mono samples
	wantSamples := int(float64(SampleRate) * (highDuration + lowDuration).Seconds())
	require.Len(t, pattern, wantSamples*2)

	assert.Equal(t, 700*time.Millisecond, highDuration+lowDuration)
}

func TestSynthTonePattern_Amplitude(t *testing.T) {
	pattern := SynthTonePattern()

	var peak int16
	for i := 0; i+1 < len(pattern); i += 2 {
		v := int16(binary.LittleEndian.Uint16(pattern[i:]))
		if v > peak {
			peak = v
		}
	}

	// Peak stays near the configured amplitude, never clipping
	amp := amplitude
	limit := int16(amp * 32767)
	assert.InDelta(t, limit, peak, 100)
	assert.LessOrEqual(t, peak, limit)
}

func TestSynthTonePattern_NotSilent(t *testing.T) {
	pattern := SynthTonePattern()

	nonZero := 0
	for i := 0; i+1 < len(pattern); i += 2 {
		if binary.LittleEndian.Uint16(pattern[i:]) != 0 {
			nonZero++
		}
	}

	assert.Greater(t, nonZero, len(pattern)/4)
}

func TestPlayer_StopBeforePlayback(t *testing.T) {
	p := &Player{stopChan: make(chan struct{})}
	p.Stop()

	// The loop must observe the stop signal before touching the audio
	// context, so this returns even with no device available.
	done := make(chan struct{})
	go func() {
		p.playLoop(nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("playLoop did not return after Stop")
	}

	// Stopping again is a no-op
	p.Stop()
}
