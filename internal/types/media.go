package types

import "strings"

const (
	DefaultMediaURLPrefix   = "/media/"
	DefaultStaticURLPrefix  = "/static/"
	DefaultCarsSubdirectory = "cars"
	DefaultPlaceholderPath  = "app/images/default_car.png"
)

// MediaLocation describes where car images live on disk and how they are
// addressed by URL. It is populated once at process start and treated as
// immutable afterwards.
type MediaLocation struct {
	MediaRoot        string `yaml:"media_root" mapstructure:"media_root"`
	MediaURLPrefix   string `yaml:"media_url" mapstructure:"media_url"`
	StaticURLPrefix  string `yaml:"static_url" mapstructure:"static_url"`
	CarsSubdirectory string `yaml:"cars_dir" mapstructure:"cars_dir"`
	PlaceholderPath  string `yaml:"placeholder" mapstructure:"placeholder"`
}

// WithDefaults returns a copy with every blank field set to its default.
// MediaRoot has no default.
func (m MediaLocation) WithDefaults() MediaLocation {
	if strings.TrimSpace(m.MediaURLPrefix) == "" {
		m.MediaURLPrefix = DefaultMediaURLPrefix
	}
	if strings.TrimSpace(m.StaticURLPrefix) == "" {
		m.StaticURLPrefix = DefaultStaticURLPrefix
	}
	if strings.TrimSpace(m.CarsSubdirectory) == "" {
		m.CarsSubdirectory = DefaultCarsSubdirectory
	}
	if strings.TrimSpace(m.PlaceholderPath) == "" {
		m.PlaceholderPath = DefaultPlaceholderPath
	}
	return m
}

// PlaceholderURL is the terminal fallback every resolution can return.
func (m MediaLocation) PlaceholderURL() string {
	return m.StaticURLPrefix + m.PlaceholderPath
}

// CarImageQuery carries the fields of a car record that take part in image
// resolution. Empty strings mean the field is unset.
type CarImageQuery struct {
	StoredImagePath        string
	RegistrationIdentifier string
	CategoryLabel          string
}

type ImageResolution struct {
	URL   string         `json:"url"`
	Tier  ResolutionTier `json:"tier"`
	Match string         `json:"match,omitempty"`
}
