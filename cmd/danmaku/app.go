package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/danmaku/audio"
	"github.com/lixenwraith/danmaku/command"
	"github.com/lixenwraith/danmaku/config"
	"github.com/lixenwraith/danmaku/constants"
	"github.com/lixenwraith/danmaku/engine"
	"github.com/lixenwraith/danmaku/logging"
	"github.com/lixenwraith/danmaku/render/screen"
	"github.com/lixenwraith/danmaku/source"
	"github.com/lixenwraith/danmaku/status"
)

const localAuthor = "you"

var (
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	errorStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	inputStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	chatStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	chatUserStyle = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	systemStyle   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
)

// app is the interactive overlay: one scheduler, one input line, optional chat panel
type app struct {
	renderer  *screen.Renderer
	store     *config.Store
	scheduler *engine.Scheduler
	commands  *command.Handler
	player    *audio.CuePlayer
	registry  *status.Registry
	clock     *engine.FrameClock
	now       func() time.Time

	input       []rune
	chat        *chatLog
	feedback    string
	feedbackAt  time.Time
	feedbackErr bool
}

// deliver routes one arrival to the chat panel and, when its kind is shown, to the scheduler
func (a *app) deliver(arr source.Arrival) {
	if arr.Text == "" {
		return
	}
	a.chat.Add(arr)
	cfg := a.store.Load()
	if !source.Filter(cfg, arr) {
		return
	}
	a.scheduler.Push(cfg, arr.Text)
}

// handleKey returns false when the user asked to quit
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.submit(string(a.input))
		a.input = a.input[:0]
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tcell.KeyCtrlU:
		a.input = a.input[:0]
	case tcell.KeyCtrlL:
		a.scheduler.Clear()
		a.notify("Overlay cleared", false)
	case tcell.KeyRune:
		a.input = append(a.input, ev.Rune())
	}
	return true
}

// submit treats /danmaku lines as commands and anything else as a local chat message
func (a *app) submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if command.IsCommand(line) {
		out, err := a.commands.Execute(line)
		switch {
		case err != nil:
			a.notify(err.Error(), true)
			logging.Logger().Warn("command failed", "line", line, "err", err)
		case len(out) > 0:
			a.notify(strings.Join(out, " | "), false)
		}
		a.player.SetEnabled(a.store.Load().Sound)
		return
	}

	a.deliver(source.Arrival{Text: source.Sanitize(line), Author: localAuthor, Kind: source.KindUser})
}

func (a *app) notify(msg string, isErr bool) {
	a.feedback = msg
	a.feedbackAt = a.now()
	a.feedbackErr = isErr
}

// frame advances the scheduler by one tick and redraws the whole screen
func (a *app) frame() {
	cfg := a.store.Load()

	reserved := constants.StatusRows
	if cfg.ChatLog {
		reserved += constants.ChatLogRows
	}
	a.renderer.Reserve(reserved)

	dt := a.clock.Tick()
	cmds := a.scheduler.Frame(cfg, dt, a.renderer.Geometry())

	s := a.renderer.Screen()
	s.Clear()
	a.renderer.Draw(cmds)
	a.drawChrome(cfg)
	s.Show()
}

func (a *app) drawChrome(cfg config.Config) {
	s := a.renderer.Screen()
	w, h := s.Size()
	if h < constants.StatusRows {
		return
	}

	if cfg.ChatLog {
		top := h - constants.StatusRows - constants.ChatLogRows
		for i, arr := range a.chat.Tail(constants.ChatLogRows) {
			y := top + i
			if y < 0 {
				continue
			}
			x := 0
			if arr.Kind == source.KindSystem {
				a.renderer.Text(x, y, arr.Text, systemStyle)
				continue
			}
			if arr.Author != "" {
				x += a.renderer.Text(x, y, "<"+arr.Author+"> ", chatUserStyle)
			}
			a.renderer.Text(x, y, arr.Text, chatStyle)
		}
	}

	statusY := h - 2
	style := statusStyle
	line := a.statusLine(cfg)
	if a.feedback != "" && a.now().Sub(a.feedbackAt) < constants.FeedbackTimeout {
		line = a.feedback
		if a.feedbackErr {
			style = errorStyle
		}
	}
	for x := 0; x < w; x++ {
		s.SetContent(x, statusY, ' ', nil, style)
	}
	a.renderer.Text(0, statusY, line, style)

	inputY := h - 1
	n := a.renderer.Text(0, inputY, constants.InputPrompt, inputStyle)
	// Keep the cursor end of long input visible
	visible := a.input
	if room := w - n - 1; room > 0 && len(visible) > room {
		visible = visible[len(visible)-room:]
	}
	n += a.renderer.Text(n, inputY, string(visible), inputStyle)
	s.ShowCursor(n, inputY)
}

func (a *app) statusLine(cfg config.Config) string {
	st := a.scheduler.Stats()
	state := "off"
	if cfg.Enabled {
		state = "on"
	}
	lanes := strconv.Itoa(cfg.LaneCount)
	// Lanes below the visible rows still take items that are never drawn
	if visible := a.renderer.Geometry().LaneCapacity(); visible < cfg.LaneCount {
		lanes = fmt.Sprintf("%d (%d visible)", cfg.LaneCount, visible)
	}
	line := fmt.Sprintf(" danmaku %s | lanes %s | speed %.2f | active %d | waiting %d | dropped %d",
		state, lanes, cfg.SpeedMultiplier, st.Active, st.Backlog, st.Dropped)
	if src := a.registry.Strings.Get(status.KeySource).Load(); src != "" {
		line += " | source " + src
	}
	return line
}
