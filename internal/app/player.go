// ABOUTME: Demo player orchestration
// ABOUTME: Wires engine, source and device together for the CLI
package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Waveline-Audio/waveline-go/internal/ui"
	"github.com/Waveline-Audio/waveline-go/pkg/decode"
	"github.com/Waveline-Audio/waveline-go/pkg/device"
	"github.com/Waveline-Audio/waveline-go/pkg/engine/malgo"
	"github.com/Waveline-Audio/waveline-go/pkg/engine/null"
	"github.com/Waveline-Audio/waveline-go/pkg/engine/oto"
	"github.com/Waveline-Audio/waveline-go/pkg/source"
)

// Config holds player configuration
type Config struct {
	Engine     string
	SampleRate int
	Channels   int
	Frequency  float64
	AudioFile  string
	Duration   time.Duration
	UseTUI     bool
}

// Player plays one source through one device until interrupted.
type Player struct {
	config Config

	// cb is swapped after Open when the engine negotiates a different
	// rate and the source needs a resampling wrapper.
	cb        atomic.Pointer[device.DataCallback]
	callbacks atomic.Int64
	frames    atomic.Int64

	dev     *device.Device
	stream  *source.Stream
	desc    string
	tuiProg *tea.Program
}

// New creates a player
func New(config Config) *Player {
	return &Player{config: config}
}

// Run plays until the source ends, the duration elapses or the user
// interrupts.
func (p *Player) Run() error {
	eng, err := newEngine(p.config.Engine)
	if err != nil {
		return err
	}

	cb, rate, channels, err := p.buildSource()
	if err != nil {
		return err
	}
	p.cb.Store(&cb)

	cfg := device.NewPlaybackConfig(rate, p.dispatch)
	cfg.Channels = channels

	dev, err := device.Open(eng, cfg)
	if err != nil {
		return err
	}
	p.dev = dev
	defer dev.Close()

	p.matchDeviceRate(rate, channels)

	if err := dev.Start(); err != nil {
		return err
	}

	log.Printf("Playing %s: %dHz, %d channel(s) via %s", p.desc, dev.SampleRate(), channels, dev.Engine())

	quit := make(chan struct{}, 1)
	if p.config.UseTUI {
		prog, err := ui.Run(quit)
		if err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		p.tuiProg = prog
		go prog.Run()
		defer prog.Quit()
		go p.pushStatus()
	}

	return p.wait(quit)
}

// wait blocks until something ends playback.
func (p *Player) wait(quit chan struct{}) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var timeout <-chan time.Time
	if p.config.Duration > 0 {
		timer := time.NewTimer(p.config.Duration)
		defer timer.Stop()
		timeout = timer.C
	}

	var done <-chan struct{}
	if p.stream != nil {
		done = p.stream.Done()
	}

	select {
	case <-sigChan:
		log.Printf("Interrupted, shutting down")
	case <-quit:
		log.Printf("Quit requested, shutting down")
	case <-timeout:
		log.Printf("Duration elapsed, shutting down")
	case <-done:
		if err := p.stream.Err(); err != nil {
			return fmt.Errorf("source failed: %w", err)
		}
		log.Printf("Source finished")
	}

	log.Printf("Rendered %d frames over %d callbacks", p.frames.Load(), p.callbacks.Load())
	return nil
}

// buildSource picks the data callback from the config and reports the
// rate and channel count to open the device with.
func (p *Player) buildSource() (device.DataCallback, int, int, error) {
	if p.config.AudioFile == "" {
		tone := source.NewTone(p.config.Frequency, p.config.SampleRate, p.config.Channels)
		p.desc = fmt.Sprintf("tone %.0fHz", p.config.Frequency)
		return tone.Callback(), p.config.SampleRate, p.config.Channels, nil
	}

	dec, err := decode.Open(p.config.AudioFile)
	if err != nil {
		return nil, 0, 0, err
	}

	format := dec.Format()
	log.Printf("Loaded %s: %s %dHz %dch %d-bit",
		p.config.AudioFile, format.Codec, format.SampleRate, format.Channels, format.BitDepth)

	p.stream = source.FromDecoder(dec)
	p.desc = p.config.AudioFile
	return p.stream.Callback(), format.SampleRate, format.Channels, nil
}

// matchDeviceRate rebuilds the source when the engine negotiated a rate
// other than the one the source was built for. Tones are regenerated at
// the device rate; file streams get a resampling wrapper.
func (p *Player) matchDeviceRate(rate, channels int) {
	negotiated := p.dev.SampleRate()
	if negotiated == rate {
		return
	}
	log.Printf("Device negotiated %dHz, source is %dHz", negotiated, rate)

	var cb device.DataCallback
	if p.stream != nil {
		p.stream = source.Resampled(p.stream, rate, negotiated, channels)
		cb = p.stream.Callback()
	} else {
		tone := source.NewTone(p.config.Frequency, negotiated, channels)
		cb = tone.Callback()
	}
	p.cb.Store(&cb)
}

// dispatch routes engine callbacks to the current source and keeps the
// data-plane counters shown in the TUI.
func (p *Player) dispatch(out []float32, frames int) {
	cb := p.cb.Load()
	if cb == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	(*cb)(out, frames)
	p.callbacks.Add(1)
	p.frames.Add(int64(frames))
}

// pushStatus feeds the TUI twice a second.
func (p *Player) pushStatus() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if p.tuiProg == nil || p.dev == nil {
			return
		}

		state := "stopped"
		if p.dev.Running() {
			state = "playing"
		}

		p.tuiProg.Send(ui.StatusMsg{
			Engine:     p.dev.Engine(),
			DeviceID:   p.dev.ID(),
			State:      state,
			SampleRate: p.dev.SampleRate(),
			Channels:   p.dev.Config().Channels,
			Format:     p.dev.Config().Format.String(),
			Source:     p.desc,
			Callbacks:  p.callbacks.Load(),
			Frames:     p.frames.Load(),
		})
	}
}

// newEngine maps the -engine flag to an engine.
func newEngine(name string) (device.Engine, error) {
	switch name {
	case "", "malgo":
		return malgo.New(), nil
	case "oto":
		return oto.New(), nil
	case "null":
		return null.New(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (supported: malgo, oto, null)", name)
	}
}
