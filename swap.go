package hxkit

import (
	"strings"
	"time"
)

// SwapMode is an hx-swap value. Action defaults to SwapOuter.
type SwapMode string

// Swap strategies accepted by hx-swap.
const (
	SwapOuter       SwapMode = "outerHTML"
	SwapInner       SwapMode = "innerHTML"
	SwapBeforeEnd   SwapMode = "beforeend"
	SwapAfterEnd    SwapMode = "afterend"
	SwapBeforeBegin SwapMode = "beforebegin"
	SwapAfterBegin  SwapMode = "afterbegin"
	SwapDelete      SwapMode = "delete"
	SwapNone        SwapMode = "none"
)

// Delay adds a swap:<d> modifier.
func (m SwapMode) Delay(d time.Duration) SwapMode {
	return m.with("swap:" + formatDuration(d))
}

// Settle adds a settle:<d> modifier.
func (m SwapMode) Settle(d time.Duration) SwapMode {
	return m.with("settle:" + formatDuration(d))
}

// ScrollTop adds scroll:top, scrolling the target into view after the swap.
func (m SwapMode) ScrollTop() SwapMode {
	return m.with("scroll:top")
}

// Strategy returns the mode without modifiers.
func (m SwapMode) Strategy() SwapMode {
	s, _, _ := strings.Cut(string(m), " ")
	return SwapMode(s)
}

func (m SwapMode) with(modifier string) SwapMode {
	return SwapMode(string(m) + " " + modifier)
}
