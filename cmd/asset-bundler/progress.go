package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

type ProgressBar struct {
	mu      sync.Mutex
	writer  io.Writer
	enabled bool
}

func NewProgressBar(w io.Writer, enabled bool) *ProgressBar {
	return &ProgressBar{
		writer:  w,
		enabled: enabled,
	}
}

// Update redraws the bar. total is only known once the model is loaded,
// so it is passed on every call.
func (pb *ProgressBar) Update(current, total int, message string) {
	if !pb.enabled {
		return
	}
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if total > 0 {
		percent := float64(current) / float64(total) * 100
		barWidth := 30
		filled := int(float64(barWidth) * percent / 100)
		bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)

		fmt.Fprintf(pb.writer, "\r[%s] %.1f%% %s", bar, percent, message)
		if current >= total {
			fmt.Fprintf(pb.writer, "\n")
		}
	} else {
		fmt.Fprintf(pb.writer, "\rGroups bundled: %d %s", current, message)
	}
}

type SimpleProgress struct {
	writer  io.Writer
	enabled bool
}

func NewSimpleProgress(w io.Writer, enabled bool) *SimpleProgress {
	return &SimpleProgress{
		writer:  w,
		enabled: enabled,
	}
}

func (sp *SimpleProgress) Update(message string) {
	if !sp.enabled {
		return
	}
	fmt.Fprintf(sp.writer, "  %s\n", message)
}
