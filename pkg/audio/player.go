package audio

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Alarm beep pattern: two alternating sine tones on a ~700ms cycle.
const (
	SampleRate = 44100

	highFreq     = 880.0
	lowFreq      = 660.0
	highDuration = 300 * time.Millisecond
	lowDuration  = 400 * time.Millisecond

	amplitude = 0.25
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// Player manages alarm playback with cancellation support
type Player struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// initAudioContext initializes the global audio context once
func initAudioContext() {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// SynthTonePattern renders one cycle of the alarm pattern as 16-bit mono PCM:
// the high tone followed by the low tone.
func SynthTonePattern() []byte {
	var buf bytes.Buffer
	writeTone(&buf, highFreq, highDuration)
	writeTone(&buf, lowFreq, lowDuration)
	return buf.Bytes()
}

func writeTone(buf *bytes.Buffer, freq float64, d time.Duration) {
	samples := int(float64(SampleRate) * d.Seconds())
	for i := 0; i < samples; i++ {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/SampleRate)
		binary.Write(buf, binary.LittleEndian, int16(v*math.MaxInt16))
	}
}

// StartAlarm begins looping the alarm pattern and returns a Player to stop
// it. Returns nil when no audio device is available; callers treat that as a
// silent degrade.
func StartAlarm() *Player {
	initAudioContext()

	if !audioCtxReady || globalAudioCtx == nil {
		log.Printf("Audio context not ready")
		return nil
	}

	p := &Player{
		stopChan: make(chan struct{}),
	}

	// Play in a goroutine so the caller is never blocked
	go p.playLoop(SynthTonePattern())

	return p
}

func (p *Player) playLoop(pattern []byte) {
	// Repeat the pattern until stopped
	for {
		// Check for a stop request before starting a cycle
		select {
		case <-p.stopChan:
			return
		default:
		}

		player := globalAudioCtx.NewPlayer(bytes.NewReader(pattern))

		// Publish the cycle's player under the lock so Stop can pause it
		p.mu.Lock()
		p.player = player
		p.mu.Unlock()

		player.Play()

		// Wait for the cycle to finish or a stop signal
		for player.IsPlaying() {
			select {
			case <-p.stopChan:
				player.Pause()
				player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}
}

// Stop halts playback and any further repetition.
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)

		if p.player != nil {
			p.player.Pause()
		}
	}
}
