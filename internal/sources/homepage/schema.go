package homepage

// BookmarkEntry is one bookmark in bookmarks.yaml.
// The YAML structure is: - Group: [ - Name: [ { icon, abbr, href } ] ]
type BookmarkEntry struct {
	Icon        string `yaml:"icon,omitempty"`
	Abbr        string `yaml:"abbr,omitempty"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}

// ServiceProps is one service in services.yaml.
// The YAML structure is: - Group: [ - Name: { href, icon, description, ... } ]
type ServiceProps struct {
	Href        string         `yaml:"href"`
	Icon        string         `yaml:"icon,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Target      string         `yaml:"target,omitempty"`
	Ping        string         `yaml:"ping,omitempty"`
	SiteMonitor string         `yaml:"siteMonitor,omitempty"`
	Widget      map[string]any `yaml:"widget,omitempty"`
}

// Entry is a link found in either file, in file order.
type Entry struct {
	Group       string
	Name        string
	Abbr        string
	Href        string
	Description string
}
