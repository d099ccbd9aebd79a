package section

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/contact"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/render"
)

// Contact layout constants
const (
	contactSplitWidth = 84
	messageRows       = 4
)

// Contact shows the reach-out details, a mailto QR code and the form
type Contact struct {
	base
	data    content.Contact
	form    *contact.Form
	qr      *QR
	editing bool

	fields [5]render.Rect
	send   render.Rect
}

// NewContact creates the contact page; toasts go to toaster
func NewContact(env Env, c *content.Content, toaster *render.Toaster) *Contact {
	env = env.normalize()
	p := &Contact{
		base: base{env: env},
		form: contact.NewForm(env.Log.With(zap.String("component", "contact")), env.Cues, toaster),
	}
	p.SetContent(c)
	return p
}

func (p *Contact) Section() core.Section { return core.SectionContact }

func (p *Contact) SetContent(c *content.Content) {
	if c == nil {
		return
	}
	if c.Contact.Email != p.data.Email || p.qr == nil {
		p.qr = nil
		if c.Contact.Email != "" {
			qr, err := NewQR("mailto:" + c.Contact.Email)
			if err != nil {
				p.env.Log.Warn("contact qr unavailable", zap.Error(err))
			} else {
				p.qr = qr
			}
		}
	}
	p.data = c.Contact
}

// Form exposes the contact form
func (p *Contact) Form() *contact.Form { return p.form }

// QR returns the mailto code, nil when no email is configured
func (p *Contact) QR() *QR { return p.qr }

// Editing reports whether keys go to the form
func (p *Contact) Editing() bool { return p.editing }

func (p *Contact) Capturing() bool { return p.editing }

func (p *Contact) HandleKey(ev *tcell.EventKey) bool {
	if !p.editing {
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == 'i') {
			p.editing = true
			return true
		}
		return false
	}

	switch p.form.HandleKey(ev) {
	case contact.ActionLeave, contact.ActionSubmitted:
		p.editing = false
	}
	return true
}

func (p *Contact) HandleMouse(ev *tcell.EventMouse, x, y int) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	for i, r := range p.fields {
		if r.Contains(x, y) {
			p.editing = true
			p.form.SetFocus(contact.FieldID(i))
			return true
		}
	}
	if p.send.Contains(x, y) {
		if _, err := p.form.Submit(); err == nil {
			p.editing = false
		}
		return true
	}
	if p.editing {
		p.editing = false
		return true
	}
	return false
}

func (p *Contact) Draw(c *render.Canvas) {
	th := p.env.Theme
	w, h := c.Size()
	if w < 20 || h < 6 {
		return
	}

	plain, accent := splitTitle(p.data.Title)
	y := heading(c, 1, plain, accent, th)
	for _, line := range render.Wrap(p.data.Tagline, min(w-4, 80)) {
		c.TextCenter(y, line, th.On(th.Muted))
		y++
	}
	y++

	body := render.Rect{X: 2, Y: y, W: w - 4, H: h - y}
	formArea := body
	if w >= contactSplitWidth {
		info := render.Rect{X: body.X, Y: body.Y, W: body.W*2/5 - 1, H: body.H}
		formArea = render.Rect{X: info.X + info.W + 2, Y: body.Y, W: body.W - info.W - 2, H: body.H}
		p.drawInfo(c.Sub(info))
	}
	p.drawForm(c, formArea)
}

func (p *Contact) drawInfo(c *render.Canvas) {
	th := p.env.Theme
	w, h := c.Size()
	y := 0
	for _, line := range render.Wrap(p.data.Intro, w) {
		c.Text(0, y, line, th.On(th.Muted))
		y++
	}
	y++

	rows := [][2]string{
		{"Email", p.data.Email},
		{"Phone", p.data.Phone},
		{"Location", p.data.Location},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		c.Text(0, y, r[0], th.On(th.Accent).Bold(true))
		c.Text(10, y, r[1], th.On(th.Fg))
		y++
	}
	if len(p.data.Socials) > 0 {
		x := 0
		y++
		for _, s := range p.data.Socials {
			x += pill(c, x, y, s.Name, th.On(th.Accent)) + 1
		}
		y += 2
	}

	if p.qr != nil {
		qw, qh := p.qr.Size()
		if qw <= w && y+qh <= h {
			p.qr.Draw(c, 0, y)
		}
	}
}

// drawForm lays out the fields in area, recording hit rectangles in canvas coordinates
func (p *Contact) drawForm(c *render.Canvas, area render.Rect) {
	th := p.env.Theme
	p.fields = [5]render.Rect{}
	p.send = render.Rect{}

	y := area.Y
	half := (area.W - 2) / 2
	place := func(id contact.FieldID, x, width, rows int) {
		fld := p.form.Field(id)
		c.Text(x, y, fld.Label, th.On(th.Muted))
		r := render.Rect{X: x, Y: y + 1, W: width, H: rows}
		p.fields[id] = r
		p.drawField(c, r, id)
		if msg := p.form.Error(id); msg != "" {
			c.Text(x, r.Y+rows, render.Truncate(msg, width), th.On(th.Error))
		}
	}

	place(contact.FirstName, area.X, half, 1)
	place(contact.LastName, area.X+half+2, area.W-half-2, 1)
	y += 3
	place(contact.Email, area.X, area.W, 1)
	y += 3
	place(contact.Subject, area.X, area.W, 1)
	y += 3
	place(contact.Message, area.X, area.W, messageRows)
	y += messageRows + 2

	label := "  Send Message  "
	st := th.Base().Background(th.Accent).Foreground(th.Bg).Bold(true)
	n := c.Text(area.X, y, label, st)
	p.send = render.Rect{X: area.X, Y: y, W: n, H: 1}

	hint := "Enter: edit   Tab: next field   Ctrl-S: send   Esc: done"
	if !p.editing {
		hint = "Enter or click a field to write a message"
	}
	c.Text(area.X+n+2, y, render.Truncate(hint, area.W-n-2), th.On(th.Muted))
}

func (p *Contact) drawField(c *render.Canvas, r render.Rect, id contact.FieldID) {
	th := p.env.Theme
	fld := p.form.Field(id)
	focused := p.editing && p.form.Focus() == id

	bg := th.Card
	if focused {
		bg = render.Blend(th.Card, th.Accent, 0.15)
	}
	st := th.Base().Background(bg).Foreground(th.Fg)
	c.Fill(r, ' ', st)
	if r.W < 3 {
		return
	}

	if !fld.Multiline {
		fld.AdjustScroll(r.W - 2)
		end := min(len(fld.Text), fld.Scroll+r.W-2)
		c.Text(r.X+1, r.Y, string(fld.Text[fld.Scroll:end]), st)
		if focused {
			p.drawCursor(c, r.X+1+fld.Cursor-fld.Scroll, r.Y, st)
		}
		return
	}

	lines, cx, cy := layoutField(fld.Text, fld.Cursor, r.W-2)
	first := max(cy-r.H+1, 0)
	for i := 0; i < r.H && first+i < len(lines); i++ {
		c.Text(r.X+1, r.Y+i, string(lines[first+i]), st)
	}
	if focused {
		p.drawCursor(c, r.X+1+cx, r.Y+cy-first, st)
	}
}

func (p *Contact) drawCursor(c *render.Canvas, x, y int, st tcell.Style) {
	ch, _, ok := c.Cell(x, y)
	if !ok {
		return
	}
	if ch == 0 {
		ch = ' '
	}
	c.Set(x, y, ch, st.Reverse(true))
}

// layoutField hard-wraps text at width and on newlines, returning the cursor cell
func layoutField(text []rune, cursor, width int) (lines [][]rune, cx, cy int) {
	if width <= 0 {
		return nil, 0, 0
	}
	var line []rune
	for i, r := range text {
		if r != '\n' && len(line) == width {
			lines = append(lines, line)
			line = nil
		}
		if i == cursor {
			cx, cy = len(line), len(lines)
		}
		if r == '\n' {
			lines = append(lines, line)
			line = nil
			continue
		}
		line = append(line, r)
	}
	if cursor >= len(text) {
		if len(line) == width {
			lines = append(lines, line)
			line = nil
		}
		cx, cy = len(line), len(lines)
	}
	lines = append(lines, line)
	return lines, cx, cy
}
