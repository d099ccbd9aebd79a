package core

// Section identifies one page of the portfolio, in navigation order
type Section uint8

const (
	SectionHome Section = iota
	SectionSkills
	SectionWork
	SectionExperience
	SectionContact
	SectionCount
)

var sectionTitles = [SectionCount]string{
	SectionHome:       "Home",
	SectionSkills:     "Skills",
	SectionWork:       "Work",
	SectionExperience: "Experience",
	SectionContact:    "Contact",
}

// String returns the tab title
func (s Section) String() string {
	if s >= SectionCount {
		return "Unknown"
	}
	return sectionTitles[s]
}

// Valid reports whether s names a page
func (s Section) Valid() bool { return s < SectionCount }

// Next returns the following section, wrapping to the first
func (s Section) Next() Section { return (s + 1) % SectionCount }

// Prev returns the preceding section, wrapping to the last
func (s Section) Prev() Section { return (s + SectionCount - 1) % SectionCount }

// Progress maps the section to page progress in [0, 1]
func (s Section) Progress() float64 {
	if !s.Valid() {
		return 0
	}
	return float64(s) / float64(SectionCount-1)
}

// Sections lists every page in order
func Sections() []Section {
	out := make([]Section, SectionCount)
	for i := range out {
		out[i] = Section(i)
	}
	return out
}
