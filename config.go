package dailylog

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file-based form of the Writer configuration.
//
//	directory: /var/log/myapp
//	prefix: myapp
//	location: UTC
//	buffer_size: 8192
//	file_mode: "0640"
type Config struct {
	Directory      string `yaml:"directory"`
	Prefix         string `yaml:"prefix"`
	Suffix         string `yaml:"suffix"`
	Discriminant   string `yaml:"discriminant"`
	Location       string `yaml:"location"`    // IANA name, "UTC" or "Local" (default)
	BufferSize     int    `yaml:"buffer_size"` // 0 disables buffering
	FileMode       string `yaml:"file_mode"`   // octal, e.g. "0644"
	Symlink        string `yaml:"symlink"`
	MonotonicDates bool   `yaml:"monotonic_dates"`
}

// ParseConfig decodes a YAML document into a Config.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, configError("failed to parse yaml: %v", err)
	}
	return c, nil
}

// LoadConfig reads and decodes the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, configError("failed to read %s: %v", path, err)
	}
	return ParseConfig(data)
}

// Options converts the optional fields of c into Options.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if c.Suffix != "" {
		opts = append(opts, WithSuffix(c.Suffix))
	}
	if c.Discriminant != "" {
		opts = append(opts, WithDiscriminant(c.Discriminant))
	}
	if c.Location != "" {
		loc, err := time.LoadLocation(c.Location)
		if err != nil {
			return nil, configError("invalid location %q: %v", c.Location, err)
		}
		opts = append(opts, WithLocation(loc))
	}
	if c.BufferSize != 0 {
		opts = append(opts, WithBufferSize(c.BufferSize))
	}
	if c.FileMode != "" {
		mode, err := strconv.ParseUint(c.FileMode, 8, 32)
		if err != nil {
			return nil, configError("invalid file mode %q: %v", c.FileMode, err)
		}
		opts = append(opts, WithFileMode(os.FileMode(mode)))
	}
	if c.Symlink != "" {
		opts = append(opts, WithSymlink(c.Symlink))
	}
	if c.MonotonicDates {
		opts = append(opts, WithMonotonicDates())
	}

	return opts, nil
}

// New creates a Writer from c. extra options are applied after the ones
// derived from c.
func (c Config) New(extra ...Option) (*Writer, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return New(c.Directory, c.Prefix, append(opts, extra...)...)
}
