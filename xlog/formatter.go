package xlog

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"
)

// Formatter renders a single log line and flushes it.
type Formatter interface {
	WriteFlush(pkg string, lvl Level, txt string)
	Flush()
}

type textFormatter struct {
	w *bufio.Writer
}

// NewTextFormatter returns the default human-readable formatter.
func NewTextFormatter(w io.Writer) Formatter {
	return &textFormatter{w: bufio.NewWriter(w)}
}

func (f *textFormatter) WriteFlush(pkg string, lvl Level, txt string) {
	f.w.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	f.w.WriteString(" " + lvl.String() + " | ")
	if pkg != "" {
		f.w.WriteString(pkg + ": ")
	}
	f.w.WriteString(txt)
	if !strings.HasSuffix(txt, "\n") {
		f.w.WriteString("\n")
	}
	f.w.Flush()
}

func (f *textFormatter) Flush() { f.w.Flush() }

type jsonFormatter struct {
	w *bufio.Writer
}

// NewJSONFormatter returns a formatter emitting one JSON object per line.
func NewJSONFormatter(w io.Writer) Formatter {
	return &jsonFormatter{w: bufio.NewWriter(w)}
}

type jsonLine struct {
	Pkg   string `json:"pkg"`
	Level string `json:"level"`
	Time  string `json:"time"`
	Msg   string `json:"msg"`
}

func (f *jsonFormatter) WriteFlush(pkg string, lvl Level, txt string) {
	json.NewEncoder(f.w).Encode(jsonLine{
		Pkg:   pkg,
		Level: lvl.String(),
		Time:  time.Now().Format(time.RFC3339Nano),
		Msg:   txt,
	})
	f.w.Flush()
}

func (f *jsonFormatter) Flush() { f.w.Flush() }
