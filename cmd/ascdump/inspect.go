package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/term"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
)

// rawPeek is how many bytes are shown when no header can be read.
const rawPeek = 16

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

type headerDump struct {
	MMInfo  uint32 `json:"mm_info"`
	GCInfo  uint32 `json:"gc_info"`
	GCInfo2 uint32 `json:"gc_info2"`
	RTID    uint32 `json:"rt_id"`
	RTSize  uint32 `json:"rt_size"`
}

type dump struct {
	Header  *headerDump `json:"header,omitempty"`
	Content string      `json:"content"`
	Text    *string     `json:"text,omitempty"`
	Error   string      `json:"error,omitempty"`
	Ptr     uint32      `json:"ptr"`
	Managed bool        `json:"managed"`
}

// inspect reads whatever can be read at ptr. A readable header marks a
// managed object; anything else is shown as raw bytes.
func inspect(h ascruntime.Heap, ptr uint32) dump {
	d := dump{Ptr: ptr}
	if ptr == 0 {
		d.Error = "null pointer"
		return d
	}

	hdr, err := asc.ReadHeader(h, ptr)
	if err != nil {
		raw, rerr := h.Get(ptr, rawPeek)
		if rerr != nil {
			d.Error = rerr.Error()
			return d
		}
		d.Content = hex.EncodeToString(raw)
		return d
	}

	d.Managed = true
	d.Header = &headerDump{
		MMInfo:  hdr.MMInfo,
		GCInfo:  hdr.GCInfo,
		GCInfo2: hdr.GCInfo2,
		RTID:    hdr.RTID,
		RTSize:  hdr.RTSize,
	}

	content, err := h.Get(ptr, hdr.RTSize)
	if err != nil {
		d.Error = err.Error()
		return d
	}
	d.Content = hex.EncodeToString(content)

	if id, err := h.TypeID(uint32(asc.TypeIndexString)); err == nil && id == hdr.RTID {
		if s, err := asc.GetString(h, asc.NewPtr[asc.String](ptr)); err == nil {
			d.Text = &s
		}
	}
	return d
}

func writeJSON(w io.Writer, d dump) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeText(w io.Writer, d dump, color bool) error {
	_, err := io.WriteString(w, renderDump(d, color))
	return err
}

func renderDump(d dump, color bool) string {
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}
	field := func(b *strings.Builder, label string, value any) {
		fmt.Fprintf(b, "%s %s\n", paint(labelStyle, fmt.Sprintf("%-8s", label)), paint(valueStyle, fmt.Sprint(value)))
	}

	var b strings.Builder
	field(&b, "ptr", d.Ptr)
	if d.Header != nil {
		field(&b, "start", d.Ptr-asc.HeaderSize)
		field(&b, "rt_id", d.Header.RTID)
		field(&b, "rt_size", d.Header.RTSize)
		if d.Header.MMInfo != 0 || d.Header.GCInfo != 0 || d.Header.GCInfo2 != 0 {
			field(&b, "gc", fmt.Sprintf("%#x %#x %#x", d.Header.MMInfo, d.Header.GCInfo, d.Header.GCInfo2))
		}
	} else if d.Error == "" {
		b.WriteString(paint(labelStyle, "no header, raw bytes"))
		b.WriteByte('\n')
	}
	if d.Content != "" {
		field(&b, "content", d.Content)
	}
	if d.Text != nil {
		fmt.Fprintf(&b, "%s %s\n", paint(labelStyle, fmt.Sprintf("%-8s", "text")), paint(stringStyle, fmt.Sprintf("%q", *d.Text)))
	}
	if d.Error != "" {
		b.WriteString(paint(errStyle, "error: "+d.Error))
		b.WriteByte('\n')
	}
	return b.String()
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
