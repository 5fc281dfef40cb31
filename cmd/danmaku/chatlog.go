package main

import "github.com/lixenwraith/danmaku/source"

// chatLog keeps the most recent arrivals for the conventional chat panel
type chatLog struct {
	lines []source.Arrival
	max   int
}

func newChatLog(max int) *chatLog {
	return &chatLog{max: max}
}

func (l *chatLog) Add(a source.Arrival) {
	l.lines = append(l.lines, a)
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Tail returns up to n newest arrivals, oldest first
func (l *chatLog) Tail(n int) []source.Arrival {
	if n > len(l.lines) {
		n = len(l.lines)
	}
	return l.lines[len(l.lines)-n:]
}
