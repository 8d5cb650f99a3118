// Package notify sends desktop notifications and plays the reminder chime
package notify

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	chimeFreq     = 880
	chimeDuration = 400 * time.Millisecond
	bufferSize    = 10
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Notifier delivers desktop notifications. A disabled Notifier does nothing.
type Notifier struct {
	send    func(title, message, icon string) error
	chime   func() error
	icon    string
	enabled bool
	sound   bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSound enables the chime after each notification.
func WithSound(on bool) Option {
	return func(n *Notifier) {
		n.sound = on
	}
}

// WithSender replaces the desktop notification backend.
func WithSender(send func(title, message, icon string) error) Option {
	return func(n *Notifier) {
		n.send = send
	}
}

// WithChime replaces the audio backend.
func WithChime(chime func() error) Option {
	return func(n *Notifier) {
		n.chime = chime
	}
}

// New returns a Notifier. appDir is the xdg data sub-directory searched for
// an icon.png.
func New(enabled bool, appDir string, opts ...Option) *Notifier {
	n := &Notifier{
		enabled: enabled,
		send:    beeep.Notify,
		chime:   playChime,
	}

	// icon will be an empty string if file is not found
	n.icon, _ = xdg.SearchDataFile(filepath.Join(appDir, "icon.png"))

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Notify shows a desktop notification. Failures are logged, not returned.
func (n *Notifier) Notify(title, message string) {
	if n == nil || !n.enabled {
		return
	}

	if err := n.send(title, message, n.icon); err != nil {
		slog.Warn("unable to display notification", slog.Any("error", err))
	}

	if !n.sound {
		return
	}

	if err := n.chime(); err != nil {
		slog.Warn("unable to play sound", slog.Any("error", err))
	}
}

// playChime plays a short sine tone and waits for it to finish.
func playChime() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Second/bufferSize),
		)
	})

	if speakerErr != nil {
		return speakerErr
	}

	tone, err := generators.SineTone(sampleRate, chimeFreq)
	if err != nil {
		return err
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(
		beep.Take(sampleRate.N(chimeDuration), tone),
		beep.Callback(func() {
			done <- true
		}),
	))

	<-done

	return nil
}
