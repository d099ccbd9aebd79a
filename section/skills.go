package section

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/effect"
	"github.com/lixenwraith/termfolio/render"
)

// Skills shows the badge cloud with a staggered entrance on first visit
type Skills struct {
	base
	data   content.Skills
	reveal *effect.Reveal
}

// NewSkills creates the skills page
func NewSkills(env Env, c *content.Content) *Skills {
	s := &Skills{
		base:   base{env: env.normalize()},
		reveal: effect.NewReveal(effect.SkillsReveal, 0),
	}
	s.SetContent(c)
	return s
}

func (s *Skills) Section() core.Section { return core.SectionSkills }

func (s *Skills) SetContent(c *content.Content) {
	if c == nil {
		return
	}
	s.data = c.Skills
	s.reveal.SetCount(len(c.Skills.Items))
}

// Enter starts the entrance the first time the page is shown
func (s *Skills) Enter() { s.reveal.Trigger() }

// Revealed reports whether the entrance finished
func (s *Skills) Revealed() bool { return s.reveal.Done() }

func (s *Skills) Step(dt time.Duration) { s.reveal.Step(dt) }

func (s *Skills) Draw(c *render.Canvas) {
	th := s.env.Theme
	w, h := c.Size()
	if w < 8 || h < 3 {
		return
	}

	y := 1
	if s.data.Tagline != "" {
		c.TextCenter(y, s.data.Tagline, th.On(th.Muted))
		y += 2
	}
	plain, accent := splitTitle(s.data.Title)
	y = heading(c, y, plain, accent, th) + 2

	for _, row := range badgeRows(s.data.Items, w-4) {
		if y >= h {
			return
		}
		x := (w - row.width) / 2
		for _, i := range row.items {
			f := s.reveal.Item(i)
			label := s.data.Items[i]
			by := y + revealRows(f.Y)
			if by < h {
				pill(c, x, by, label, revealStyle(th, th.Accent, f.Opacity).Bold(true))
			}
			x += badgeWidth(label) + 1
		}
		y += 2
	}
}

type badgeRow struct {
	items []int
	width int
}

func badgeWidth(label string) int {
	return runewidth.StringWidth(label) + 4
}

// badgeRows flows badges into centred rows no wider than width
func badgeRows(items []string, width int) []badgeRow {
	var rows []badgeRow
	var cur badgeRow
	for i, it := range items {
		bw := badgeWidth(it)
		if len(cur.items) > 0 && cur.width+1+bw > width {
			rows = append(rows, cur)
			cur = badgeRow{}
		}
		if len(cur.items) > 0 {
			cur.width++
		}
		cur.items = append(cur.items, i)
		cur.width += bw
	}
	if len(cur.items) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// splitTitle separates the last word for the accent colour
func splitTitle(title string) (plain, accent string) {
	title = strings.TrimSpace(title)
	i := strings.LastIndexByte(title, ' ')
	if i < 0 {
		return title, ""
	}
	return title[:i], title[i+1:]
}
