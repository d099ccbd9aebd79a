package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MaxLineLength caps single-line fields so headers stay on one row
	MaxLineLength = 80
	// MaxTextLength caps free-text fields
	MaxTextLength = 2000
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid reports content that cannot drive the page
var ErrInvalid = errors.New("invalid content")

// ansiPattern matches CSI and OSC escape sequences
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)

// Default returns the embedded content
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		// Embedded file is part of the build
		panic(fmt.Sprintf("content: embedded default invalid: %v", err))
	}
	return c
}

// DefaultYAML returns the embedded source
func DefaultYAML() []byte {
	return bytes.Clone(defaultYAML)
}

// Load reads and parses a content file
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML strictly, sanitizes every string and validates the result
func Parse(data []byte) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.sanitize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Marshal encodes content back to YAML
func Marshal(c *Content) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks the fields the page cannot render without
func (c *Content) Validate() error {
	switch {
	case c.Hero.Name == "":
		return fmt.Errorf("%w: hero.name is empty", ErrInvalid)
	case len(c.Work.Projects) == 0:
		return fmt.Errorf("%w: work.projects is empty", ErrInvalid)
	case c.Contact.Email != "" && !strings.Contains(c.Contact.Email, "@"):
		return fmt.Errorf("%w: contact.email %q", ErrInvalid, c.Contact.Email)
	}
	for i, p := range c.Work.Projects {
		if p.Title == "" {
			return fmt.Errorf("%w: work.projects[%d].title is empty", ErrInvalid, i)
		}
	}
	for i, f := range c.Experience.Featured {
		if f.Title == "" {
			return fmt.Errorf("%w: experience.featured[%d].title is empty", ErrInvalid, i)
		}
	}
	return nil
}

// --- Sanitization ---

// sanitizeLine strips escape sequences and control characters, collapses
// whitespace and caps the length
func sanitizeLine(s string) string {
	return truncateRunes(strings.Join(strings.Fields(stripControl(s)), " "), MaxLineLength)
}

// sanitizeText is sanitizeLine for prose: paragraphs survive
func sanitizeText(s string) string {
	paras := strings.Split(stripControl(strings.ReplaceAll(s, "\r\n", "\n")), "\n")
	for i, p := range paras {
		paras[i] = strings.Join(strings.Fields(p), " ")
	}
	return truncateRunes(strings.TrimSpace(strings.Join(paras, "\n")), MaxTextLength)
}

func stripControl(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
			return -1
		}
		return r
	}, s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func sanitizeAll(list []string) []string {
	out := list[:0]
	for _, s := range list {
		if s = sanitizeLine(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Content) sanitize() {
	h := &c.Hero
	h.Greeting, h.Headline = sanitizeLine(h.Greeting), sanitizeLine(h.Headline)
	h.Name, h.Role = sanitizeLine(h.Name), sanitizeLine(h.Role)
	h.Bio = sanitizeText(h.Bio)

	c.Skills.Title, c.Skills.Tagline = sanitizeLine(c.Skills.Title), sanitizeLine(c.Skills.Tagline)
	c.Skills.Items = sanitizeAll(c.Skills.Items)

	c.Work.Title = sanitizeLine(c.Work.Title)
	for i := range c.Work.Projects {
		p := &c.Work.Projects[i]
		p.Title, p.Image = sanitizeLine(p.Title), strings.TrimSpace(stripControl(p.Image))
	}

	c.Experience.Title, c.Experience.Tagline = sanitizeLine(c.Experience.Title), sanitizeLine(c.Experience.Tagline)
	for i := range c.Experience.Featured {
		f := &c.Experience.Featured[i]
		f.Title, f.Description = sanitizeLine(f.Title), sanitizeText(f.Description)
		f.Tags = sanitizeAll(f.Tags)
		f.Image = strings.TrimSpace(stripControl(f.Image))
	}

	ct := &c.Contact
	ct.Title, ct.Tagline, ct.Intro = sanitizeLine(ct.Title), sanitizeText(ct.Tagline), sanitizeText(ct.Intro)
	ct.Email, ct.Phone, ct.Location = sanitizeLine(ct.Email), sanitizeLine(ct.Phone), sanitizeLine(ct.Location)
	for i := range ct.Socials {
		ct.Socials[i].Name = sanitizeLine(ct.Socials[i].Name)
		ct.Socials[i].URL = strings.TrimSpace(stripControl(ct.Socials[i].URL))
	}

	c.Footer.Owner, c.Footer.Copyright = sanitizeLine(c.Footer.Owner), sanitizeLine(c.Footer.Copyright)
}
