// ABOUTME: Entry point for the Waveline demo player
// ABOUTME: Parses CLI flags and plays a tone or audio file through a device
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/Waveline-Audio/waveline-go/internal/app"
)

var (
	engine    = flag.String("engine", "malgo", "Audio engine (malgo, oto, null)")
	rate      = flag.Int("rate", 48000, "Sample rate in Hz (tone mode; files use their own)")
	channels  = flag.Int("channels", 1, "Channel count (tone mode)")
	freq      = flag.Float64("freq", 440, "Tone frequency in Hz")
	audioFile = flag.String("audio", "", "Audio file to play (MP3, FLAC, WAV). If not specified, plays a tone")
	duration  = flag.Duration("duration", 0, "Stop after this long (0 = play until interrupted)")
	logFile   = flag.String("log-file", "waveline-play.log", "Log file path")
	noTUI     = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	// Log to both file and stdout; with the TUI active, file only
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting Waveline player: engine=%s", *engine)
	log.Printf("Logging to: %s", *logFile)

	player := app.New(app.Config{
		Engine:     *engine,
		SampleRate: *rate,
		Channels:   *channels,
		Frequency:  *freq,
		AudioFile:  *audioFile,
		Duration:   *duration,
		UseTUI:     useTUI,
	})

	if err := player.Run(); err != nil {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
		log.Fatalf("Playback failed: %v", err)
	}
}
