package ui

import (
	"strings"

	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/text"
)

// UILabel draws a string with a font. The laid-out text is kept in a
// text.Text, so an unchanged label reuses its cached geometry across frames.
type UILabel struct {
	Common[*UILabel]
	str      string
	font     *text.Font
	wrap     bool
	maxWidth float32
	txt      *text.Text
}

func Label(str string) *UILabel {
	l := &UILabel{str: str}
	l.Common = NewCommon(l)
	l.base.color = colors.White
	return l
}

// Font sets the label's font. The label lays out with its own clone, taken
// on the next Layout, so font must still be live then.
func (l *UILabel) Font(font *text.Font) *UILabel { l.font = font; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel    { l.wrap = enabled; return l }
func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.maxWidth = width
	if width > 0 {
		l.wrap = true
	}
	return l
}

// SetText changes the label's string.
func (l *UILabel) SetText(s string) { l.str = s }
func (l *UILabel) Text() string     { return l.str }

// Content returns the text as laid out by the last Layout, wrapped lines
// joined with '\n'.
func (l *UILabel) Content() string {
	if l.txt == nil {
		return ""
	}
	return l.txt.Content()
}

func (l *UILabel) Layout(ctx *Context, constraints Constraints) LayoutResult {
	if l.font == nil {
		l.font = ctx.DefaultFont
	}
	if l.font == nil {
		return LayoutResult{}
	}

	pad := l.base.Padding()
	var limit float32
	if constraints.Max[0] > 0 {
		limit = constraints.Max[0]
	}
	if l.maxWidth > 0 && (limit == 0 || l.maxWidth < limit) {
		limit = l.maxWidth
	}
	if limit > 0 {
		limit = max(0, limit-pad[0]-pad[2])
	}

	laidOut := l.str
	if l.wrap && limit > 0 {
		laidOut = l.wrapLines(limit)
	}
	l.setContent(laidOut)

	var contentW, contentH float32
	if l.str != "" {
		g, err := l.txt.Geometry()
		if err != nil {
			core.Logger().Warn("ui: label layout failed", "err", err)
		} else {
			contentW, contentH = g.Size[0], g.Size[1]
		}
	}

	ps := l.base.padSum()
	width := l.base.resolve(0, contentW+ps[0], constraints)
	height := l.base.resolve(1, contentH+ps[1], constraints)
	l.base.SetSize(width, height)
	return LayoutResult{Size: [2]float32{width, height}}
}

// setContent updates the backing Text only on change so its geometry
// survives unchanged frames.
func (l *UILabel) setContent(s string) {
	switch {
	case l.txt == nil:
		l.txt = text.NewText(s, l.font)
	case !l.txt.Font().Same(l.font):
		l.txt.SetFont(l.font)
		l.txt.SetContent(s)
	case l.txt.Content() != s:
		l.txt.SetContent(s)
	}
}

// Release drops the label's font clone. The next Layout takes a new one.
func (l *UILabel) Release() {
	if l.txt != nil {
		l.txt.Release()
		l.txt = nil
	}
}

func (l *UILabel) Draw(ctx *Context) {
	if l.txt == nil || l.txt.Content() == "" || l.base.color[3] <= 0 {
		return
	}
	pad := l.base.Padding()
	params := renderer2d.Params(l.base.position[0]+pad[0], l.base.position[1]+pad[1]).WithColor(l.base.color)
	if err := l.txt.Draw(ctx.Renderer, params); err != nil {
		core.Logger().Warn("ui: label draw failed", "err", err)
	}
}

func (l *UILabel) measure(s string) float32 {
	w, _, err := l.font.Measure(s)
	if err != nil {
		return 0
	}
	return w
}

// wrapLines breaks each line at spaces so no line exceeds maxWidth, unless
// a single word is wider on its own.
func (l *UILabel) wrapLines(maxWidth float32) string {
	spaceW := l.measure(" ")
	var wrapped []string
	for _, raw := range strings.Split(l.str, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := words[0]
		currentW := l.measure(current)
		for _, word := range words[1:] {
			wordW := l.measure(word)
			if currentW+spaceW+wordW > maxWidth {
				wrapped = append(wrapped, current)
				current, currentW = word, wordW
				continue
			}
			current += " " + word
			currentW += spaceW + wordW
		}
		wrapped = append(wrapped, current)
	}
	return strings.Join(wrapped, "\n")
}
