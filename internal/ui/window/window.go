// Package window implements an ebiten based window host for the machine.
package window

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/ui"
	"github.com/retroenv/retrogolib/log"
)

const audioBufferSize = 40 * time.Millisecond

// keymap maps the keypad keys 0-F to the left side of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = [keypad.Count]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// App implements ebiten.Game and runs the machine in a window.
type App struct {
	ctx    context.Context
	logger *log.Logger
	cfg    ui.Config
	m      *machine.Machine
	runner *runner.Runner

	tex    *ebiten.Image
	tone   *toneSource
	paused bool
}

// NewApp returns a new window host. The runner must drive the passed machine.
func NewApp(ctx context.Context, logger *log.Logger, cfg ui.Config, m *machine.Machine, r *runner.Runner) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)

	a := &App{
		ctx:    ctx,
		logger: logger,
		cfg:    cfg,
		m:      m,
		runner: r,
	}
	if !cfg.Muted {
		tone, err := newToneSource(cfg.ToneFrequency)
		if err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		} else {
			a.tone = tone
		}
	}
	return a
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	err := ebiten.RunGame(a)
	if a.tone != nil {
		a.tone.Close()
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update handles the input and advances the machine by one window tick.
// The R key on the keyboard is mapped to keypad key D, reset is on
// Backspace.
func (a *App) Update() error {
	if a.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var keys [keypad.Count]bool
	for key, ebitenKey := range keymap {
		keys[key] = ebiten.IsKeyPressed(ebitenKey)
	}
	a.m.SetKeys(keys)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if err := a.m.Restart(); err != nil {
			return fmt.Errorf("restarting machine: %w", err)
		}
		a.logger.Info("Machine restarted")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.saveScreenshot()
	}

	if a.paused {
		// frame-step when paused
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			if err := a.runner.RunFrames(a.ctx, 1); err != nil {
				return err
			}
		}
	} else {
		elapsed := time.Second / time.Duration(ebiten.TPS())
		if err := a.runner.Advance(elapsed); err != nil {
			return err
		}
	}

	if a.tone != nil {
		a.tone.SetActive(!a.paused && a.m.SoundActive())
	}
	return nil
}

// Draw renders the display at native resolution, ebiten scales it to the
// window size.
func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
	}
	img := ui.Image(a.m.Frame(), a.cfg.Foreground, a.cfg.Background)
	a.tex.WritePixels(img.Pix)
	screen.DrawImage(a.tex, nil)

	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 1, 1)
	}
}

// Layout returns the native display resolution.
func (a *App) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}

func (a *App) saveScreenshot() {
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		a.logger.Error("Creating screenshot file failed", log.Err(err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			a.logger.Error("Closing screenshot file failed", log.Err(err))
		}
	}()

	if err := ui.WritePNG(f, a.m.Frame(), a.cfg); err != nil {
		a.logger.Error("Writing screenshot failed", log.Err(err))
		return
	}
	a.logger.Info("Screenshot saved", log.String("file", name))
}

// toneSource plays the buzzer tone through an ebiten audio player.
type toneSource struct {
	stream *ui.ToneStream
	player *audio.Player
}

func newToneSource(frequency int) (*toneSource, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(ui.SampleRate)
	}

	stream := ui.NewToneStream(frequency)
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("creating audio player: %w", err)
	}
	player.SetBufferSize(audioBufferSize)
	player.Play()

	return &toneSource{
		stream: stream,
		player: player,
	}, nil
}

func (s *toneSource) SetActive(active bool) {
	s.stream.SetActive(active)
}

func (s *toneSource) Close() {
	_ = s.player.Close()
}
