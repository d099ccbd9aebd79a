package content

// Content is the whole static page
type Content struct {
	Hero       Hero       `yaml:"hero"`
	Skills     Skills     `yaml:"skills"`
	Work       Work       `yaml:"work"`
	Experience Experience `yaml:"experience"`
	Contact    Contact    `yaml:"contact"`
	Footer     Footer     `yaml:"footer"`
}

// Hero is the landing block
type Hero struct {
	Greeting string `yaml:"greeting"`
	Headline string `yaml:"headline"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
}

// Skills is the badge list
type Skills struct {
	Title   string   `yaml:"title"`
	Tagline string   `yaml:"tagline"`
	Items   []string `yaml:"items"`
}

// Project is one carousel card
type Project struct {
	Title string `yaml:"title"`
	Image string `yaml:"image"`
}

// Work is the carousel section
type Work struct {
	Title    string    `yaml:"title"`
	Projects []Project `yaml:"projects"`
}

// Featured is a highlighted project with a write-up
type Featured struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
}

// Experience lists featured projects
type Experience struct {
	Title    string     `yaml:"title"`
	Tagline  string     `yaml:"tagline"`
	Featured []Featured `yaml:"featured"`
}

// Social is a named profile link
type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Contact holds the reach-out details
type Contact struct {
	Title    string   `yaml:"title"`
	Tagline  string   `yaml:"tagline"`
	Intro    string   `yaml:"intro"`
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	Location string   `yaml:"location"`
	Socials  []Social `yaml:"socials"`
}

// Footer is the closing line
type Footer struct {
	Owner     string `yaml:"owner"`
	Copyright string `yaml:"copyright"`
}
