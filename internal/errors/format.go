package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type style string

const (
	styleError style = "\033[1;31m"
	styleCode  style = "\033[1m"
	styleLabel style = "\033[36m"
	styleDim   style = "\033[90m"
)

var colors = true

// SetColor turns ANSI styling in Format on or off.
func SetColor(on bool) { colors = on }

func paint(s style, text string) string {
	if !colors {
		return text
	}
	return string(s) + text + "\033[0m"
}

// Format renders e for a terminal: a header naming the code and category,
// the detail, every cause down the wrap chain, then hint, example and docs.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString(paint(styleError, "error"))
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", paint(styleCode, e.Code))
	}
	if e.Category != "" {
		fmt.Fprintf(&b, " [%s]", e.Category)
	}
	fmt.Fprintf(&b, ": %s\n", e.Message)

	if e.Detail != "" {
		indent(&b, "  ", e.Detail)
	}

	for cause := e.Wrapped; cause != nil; {
		var ce *Error
		if !stderrors.As(cause, &ce) || ce.Code == "" {
			fmt.Fprintf(&b, "  %s %s\n", paint(styleDim, "caused by:"), cause.Error())
			break
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", paint(styleDim, "caused by:"), ce.Code, ce.Message)
		cause = ce.Wrapped
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n", paint(styleLabel, "hint:"), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint(styleLabel, "example:"))
		indent(&b, "    ", e.Example)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s %s\n", paint(styleDim, "docs:"), e.DocURL)
	}
	return b.String()
}

func indent(b *strings.Builder, prefix, text string) {
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// MarshalJSON encodes e with its cause flattened to a string.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := struct {
		Code       string   `json:"code,omitempty"`
		Category   Category `json:"category,omitempty"`
		Message    string   `json:"message"`
		Detail     string   `json:"detail,omitempty"`
		Suggestion string   `json:"suggestion,omitempty"`
		DocURL     string   `json:"docUrl,omitempty"`
		Cause      string   `json:"cause,omitempty"`
	}{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	return json.Marshal(out)
}

// Fprint writes err to w, using Format when err carries an *Error.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "%s: %v\n", paint(styleError, "error"), err)
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
