// Package command implements the /danmaku settings surface.
// Every change goes through config.Store and is saved when a file path is set.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/danmaku/config"
	"github.com/lixenwraith/danmaku/logging"
)

// Prefix introduces a settings command on the input line
const Prefix = "/danmaku"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("value out of range")
)

// Handler applies commands to a shared config store
type Handler struct {
	store *config.Store
	path  string
}

// NewHandler saves to path after each change; an empty path disables persistence
func NewHandler(store *config.Store, path string) *Handler {
	return &Handler{store: store, path: path}
}

// IsCommand reports whether an input line is addressed to this handler
func IsCommand(line string) bool {
	line = strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(line, Prefix)
	return ok && (rest == "" || rest[0] == ' ')
}

// Execute runs one command line, with or without the /danmaku prefix
// Returns feedback lines for the user. Parse and range errors leave the config unchanged;
// a failed auto-save is returned after the change has already been applied
func (h *Handler) Execute(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, Prefix))

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return h.status(), nil
	}
	verb, args := strings.ToLower(parts[0]), parts[1:]

	switch verb {
	case "status":
		return h.status(), nil
	case "help", "?":
		return helpLines(), nil
	case "enable":
		return h.apply(func(c *config.Config) { c.Enabled = true }, "Danmaku enabled")
	case "disable":
		return h.apply(func(c *config.Config) { c.Enabled = false }, "Danmaku disabled")
	case "system":
		return h.toggle(args, "System messages", func(c *config.Config, v bool) { c.ShowSystem = v })
	case "user":
		return h.toggle(args, "User messages", func(c *config.Config, v bool) { c.ShowUser = v })
	case "vanilla":
		return h.toggle(args, "Chat log", func(c *config.Config, v bool) { c.ChatLog = v })
	case "sound":
		return h.toggle(args, "Sound", func(c *config.Config, v bool) { c.Sound = v })
	case "speed":
		return h.float(args, "speed", config.MinSpeed, config.MaxSpeed, "Speed set to %.2f",
			func(c *config.Config, v float64) { c.SpeedMultiplier = v })
	case "opacity":
		return h.float(args, "opacity", config.MinOpacity, config.MaxOpacity, "Opacity set to %.2f",
			func(c *config.Config, v float64) { c.Opacity = v })
	case "size":
		return h.float(args, "size", config.MinFontScale, config.MaxFontScale, "Font size set to %.2f",
			func(c *config.Config, v float64) { c.FontScale = v })
	case "duration":
		return h.float(args, "duration", config.MinDuration, config.MaxDuration, "Duration set to %.1fs",
			func(c *config.Config, v float64) { c.TargetDuration = v })
	case "lanes":
		return h.lanes(args)
	case "backlog":
		return h.backlog(args)
	case "save":
		return h.save()
	case "reload":
		return h.reload()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
	}
}

// apply mutates the store, then persists
func (h *Handler) apply(fn func(*config.Config), feedback string) ([]string, error) {
	h.store.Update(fn)
	logging.Logger().Info("setting changed", "feedback", feedback)
	if err := h.persist(); err != nil {
		return []string{feedback}, err
	}
	return []string{feedback}, nil
}

func (h *Handler) persist() error {
	if h.path == "" {
		return nil
	}
	if err := config.SaveFile(h.path, h.store.Load()); err != nil {
		return fmt.Errorf("auto-save: %w", err)
	}
	return nil
}

func (h *Handler) toggle(args []string, label string, set func(*config.Config, bool)) ([]string, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s needs on or off", ErrMissingArgument, strings.ToLower(label))
	}
	v, err := parseBool(args[0])
	if err != nil {
		return nil, err
	}
	return h.apply(func(c *config.Config) { set(c, v) }, fmt.Sprintf("%s: %s", label, onOff(v)))
}

func (h *Handler) float(args []string, name string, lo, hi float64, format string, set func(*config.Config, float64)) ([]string, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s needs a value", ErrMissingArgument, name)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a number", ErrInvalidArgument, name, args[0])
	}
	if v < lo || v > hi {
		return nil, fmt.Errorf("%w: %s must be between %g and %g", ErrOutOfRange, name, lo, hi)
	}
	return h.apply(func(c *config.Config) { set(c, v) }, fmt.Sprintf(format, v))
}

func (h *Handler) lanes(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: lanes needs a value", ErrMissingArgument)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: lanes %q is not an integer", ErrInvalidArgument, args[0])
	}
	if n < config.MinLanes || n > config.MaxLanes {
		return nil, fmt.Errorf("%w: lanes must be between %d and %d", ErrOutOfRange, config.MinLanes, config.MaxLanes)
	}
	return h.apply(func(c *config.Config) { c.LaneCount = n }, fmt.Sprintf("Lanes set to %d", n))
}

// backlog takes a cap and an optional policy: backlog 128 drop-newest
func (h *Handler) backlog(args []string) ([]string, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, fmt.Errorf("%w: backlog needs a size and optional policy", ErrMissingArgument)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: backlog %q is not an integer", ErrInvalidArgument, args[0])
	}
	if n < 0 || n > config.MaxBacklogCap {
		return nil, fmt.Errorf("%w: backlog must be between 0 and %d", ErrOutOfRange, config.MaxBacklogCap)
	}

	policy := h.store.Load().Backlog.Policy
	if len(args) == 2 {
		policy = config.Policy(strings.ToLower(args[1]))
		if !policy.Valid() {
			return nil, fmt.Errorf("%w: policy must be %s or %s", ErrInvalidArgument, config.PolicyDropOldest, config.PolicyDropNewest)
		}
	}

	return h.apply(func(c *config.Config) {
		c.Backlog.Max = n
		c.Backlog.Policy = policy
	}, fmt.Sprintf("Backlog set to %s (%s)", backlogLabel(n), policy))
}

func (h *Handler) save() ([]string, error) {
	if h.path == "" {
		return nil, fmt.Errorf("%w: no config file configured", ErrInvalidArgument)
	}
	if err := config.SaveFile(h.path, h.store.Load()); err != nil {
		return nil, err
	}
	return []string{"Settings saved to " + h.path}, nil
}

func (h *Handler) reload() ([]string, error) {
	if h.path == "" {
		return nil, fmt.Errorf("%w: no config file configured", ErrInvalidArgument)
	}
	cfg, err := config.LoadFile(h.path)
	if err != nil {
		return nil, err
	}
	h.store.Store(cfg)
	return []string{"Settings reloaded"}, nil
}

func (h *Handler) status() []string {
	c := h.store.Load()
	return []string{
		"Danmaku: " + enabledLabel(c.Enabled),
		"System messages: " + onOff(c.ShowSystem),
		"User messages: " + onOff(c.ShowUser),
		"Chat log: " + onOff(c.ChatLog),
		fmt.Sprintf("Speed: %.2f", c.SpeedMultiplier),
		fmt.Sprintf("Lanes: %d", c.LaneCount),
		fmt.Sprintf("Opacity: %.2f", c.Opacity),
		fmt.Sprintf("Font size: %.2f", c.FontScale),
		fmt.Sprintf("Duration: %.1fs", c.TargetDuration),
		"Sound: " + onOff(c.Sound),
		fmt.Sprintf("Backlog: %s (%s)", backlogLabel(c.Backlog.Max), c.Backlog.Policy),
	}
}

func helpLines() []string {
	return []string{
		Prefix + " [status] | enable | disable | save | reload",
		Prefix + " system|user|vanilla|sound <on|off>",
		Prefix + " speed <0.1-5> | lanes <1-20> | opacity <0-1> | size <0.5-2> | duration <1-30>",
		Prefix + " backlog <n> [drop-oldest|drop-newest]",
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not on or off", ErrInvalidArgument, s)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func enabledLabel(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func backlogLabel(n int) string {
	if n == 0 {
		return "unbounded"
	}
	return strconv.Itoa(n)
}
