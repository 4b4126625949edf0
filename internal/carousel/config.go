package carousel

import (
	"fmt"
	"sort"
	"time"
)

// Breakpoint names a responsive width class.
type Breakpoint string

const (
	BreakpointBase Breakpoint = "base"
	BreakpointMD   Breakpoint = "md"
	BreakpointLG   Breakpoint = "lg"
)

// Minimum viewport widths, in pixels, at which each breakpoint applies.
var breakpointWidths = map[Breakpoint]int{
	BreakpointBase: 0,
	BreakpointMD:   768,
	BreakpointLG:   1024,
}

// DefaultSlidesPerView fills breakpoints missing from a Config.
var DefaultSlidesPerView = map[Breakpoint]int{
	BreakpointBase: 1,
	BreakpointMD:   2,
	BreakpointLG:   3,
}

const (
	DefaultSpaceBetween    = 24
	DefaultAutoplayDelayMs = 3000
)

// Config is the declarative contract handed to the slide engine.
type Config struct {
	SlidesPerView                map[Breakpoint]int `json:"slides_per_view" yaml:"slides_per_view"`
	SpaceBetween                 int                `json:"space_between" yaml:"space_between"`
	AutoplayDelayMs              int                `json:"autoplay_delay_ms" yaml:"autoplay_delay_ms"`
	DisableAutoplayOnInteraction bool               `json:"disable_autoplay_on_interaction" yaml:"disable_autoplay_on_interaction"`
	Loop                         bool               `json:"loop" yaml:"loop"`
}

// DefaultConfig returns the configuration used when callers supply nothing.
func DefaultConfig() Config {
	return Config{
		SlidesPerView:   copyBreakpoints(DefaultSlidesPerView),
		SpaceBetween:    DefaultSpaceBetween,
		AutoplayDelayMs: DefaultAutoplayDelayMs,
		Loop:            true,
	}
}

// Normalize returns a copy with missing or non-positive breakpoint entries
// replaced by DefaultSlidesPerView. Unknown breakpoint names are kept.
func (c Config) Normalize() Config {
	out := c
	out.SlidesPerView = copyBreakpoints(c.SlidesPerView)
	for bp, n := range DefaultSlidesPerView {
		if out.SlidesPerView[bp] <= 0 {
			out.SlidesPerView[bp] = n
		}
	}
	if out.SpaceBetween < 0 {
		out.SpaceBetween = 0
	}
	if out.AutoplayDelayMs < 0 {
		out.AutoplayDelayMs = 0
	}
	return out
}

// Validate reports breakpoint names the engine does not understand.
func (c Config) Validate() error {
	for bp := range c.SlidesPerView {
		if _, ok := breakpointWidths[bp]; !ok {
			return fmt.Errorf("%w: unknown breakpoint %q", ErrInvalidConfig, bp)
		}
	}
	return nil
}

// AutoplayDelay is AutoplayDelayMs as a duration. Zero disables autoplay.
func (c Config) AutoplayDelay() time.Duration {
	return time.Duration(c.AutoplayDelayMs) * time.Millisecond
}

// SlidesFor resolves how many slides are visible at viewport width.
func (c Config) SlidesFor(width int) int {
	n := c.Normalize()
	best, bestWidth := n.SlidesPerView[BreakpointBase], -1
	for bp, count := range n.SlidesPerView {
		minWidth, ok := breakpointWidths[bp]
		if !ok {
			continue
		}
		if width >= minWidth && minWidth > bestWidth {
			best, bestWidth = count, minWidth
		}
	}
	return best
}

// BreakpointSetting is one row of the resolved responsive table.
type BreakpointSetting struct {
	Name          Breakpoint `json:"name"`
	MinWidth      int        `json:"min_width"`
	SlidesPerView int        `json:"slides_per_view"`
}

// Breakpoints lists the known breakpoints in ascending width order.
func (c Config) Breakpoints() []BreakpointSetting {
	n := c.Normalize()
	out := make([]BreakpointSetting, 0, len(breakpointWidths))
	for bp, width := range breakpointWidths {
		out = append(out, BreakpointSetting{Name: bp, MinWidth: width, SlidesPerView: n.SlidesPerView[bp]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinWidth < out[j].MinWidth })
	return out
}

func copyBreakpoints(in map[Breakpoint]int) map[Breakpoint]int {
	out := make(map[Breakpoint]int, len(DefaultSlidesPerView))
	for k, v := range in {
		out[k] = v
	}
	return out
}
