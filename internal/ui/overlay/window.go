package overlay

import (
	"fmt"
	"image/color"
	"time"

	"breakreminder/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const pausedMarker = "⏸"

const (
	overlayWidthFraction  = float32(0.28)
	overlayHeightFraction = float32(0.30)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window shows the break countdown with a Skip action.
type Window struct {
	window       fyne.Window
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	timerLabel   *canvas.Text
	skipButton   *widget.Button
	onSkip       func()
	visible      bool
}

// New creates the break window. It stays hidden until Show.
func New(app fyne.App) *Window {
	window := app.NewWindow("Break Time")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated and stays above the main window.
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 32, B: 44, A: 240})

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 24

	messageLabel := canvas.NewText("", color.NRGBA{R: 220, G: 220, B: 220, A: 255})
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextSize = 15

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 40

	skipButton := widget.NewButton("Skip Break", nil)

	content := container.NewVBox(
		layout.NewSpacer(),
		titleLabel,
		messageLabel,
		timerLabel,
		container.NewCenter(skipButton),
		layout.NewSpacer(),
	)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))

	overlay := &Window{
		window:       window,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		timerLabel:   timerLabel,
		skipButton:   skipButton,
	}
	skipButton.OnTapped = overlay.handleSkip
	window.SetCloseIntercept(overlay.handleSkip)

	return overlay
}

// SetOnSkip sets the handler for the Skip action.
func (overlay *Window) SetOnSkip(handler func()) {
	overlay.onSkip = handler
}

// Show opens the break window for a break of the given length.
func (overlay *Window) Show(minutes int, kind timekeeper.BreakKind) {
	fyne.Do(func() {
		overlay.showUnsafe(minutes, kind)
	})
}

// SetRemaining updates the countdown.
func (overlay *Window) SetRemaining(remaining time.Duration, paused bool) {
	fyne.Do(func() {
		overlay.setRemainingUnsafe(remaining, paused)
	})
}

// Close hides the break window.
func (overlay *Window) Close() {
	fyne.Do(overlay.closeUnsafe)
}

func (overlay *Window) showUnsafe(minutes int, kind timekeeper.BreakKind) {
	overlay.titleLabel.Text = breakTitle(kind)
	overlay.titleLabel.Refresh()
	overlay.messageLabel.Text = breakMessage(minutes)
	overlay.messageLabel.Refresh()
	overlay.setRemainingUnsafe(time.Duration(minutes)*time.Minute, false)

	overlay.visible = true
	overlay.window.Show()
	overlay.resizeToScreenFraction()
	overlay.window.RequestFocus()
}

func (overlay *Window) setRemainingUnsafe(remaining time.Duration, paused bool) {
	overlay.timerLabel.Text = formatCountdown(remaining, paused)
	overlay.timerLabel.Refresh()
}

func (overlay *Window) closeUnsafe() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.window.Hide()
}

func (overlay *Window) handleSkip() {
	if overlay.onSkip != nil {
		overlay.onSkip()
	}
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

func breakTitle(kind timekeeper.BreakKind) string {
	if kind == timekeeper.BreakLong {
		return "Long Break Time!"
	}
	return "Break Time!"
}

func breakMessage(minutes int) string {
	if minutes == 1 {
		return "Take a 1 minute break. Stand up and stretch."
	}
	return fmt.Sprintf("Take a %d minute break. Stand up and stretch.", minutes)
}

func formatCountdown(remaining time.Duration, paused bool) string {
	text := timekeeper.FormatRemaining(remaining)
	if paused {
		return pausedMarker + " " + text
	}
	return text
}
