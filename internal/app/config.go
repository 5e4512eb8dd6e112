package app

// Default configuration constants
const (
	DefaultOutDir           = "."
	DefaultLogRotateUTC     = true
	DefaultLogRetentionDays = 30
)

// Config holds application configuration
type Config struct {
	ProfilePath  string
	OutputPath   string
	OutDir       string
	Play         bool
	Upload       bool
	LogDir       string
	LogRotateUTC bool
	Verbose      bool
	ShowVersion  bool

	// Overrides holds profile values set on the command line, keyed like
	// the profile file ("streaming.stream_key").
	Overrides map[string]any
}

// writesFile reports whether the WAV goes to disk. Without any sink
// selected the file is the default.
func (c Config) writesFile() bool {
	return c.OutputPath != "" || (!c.Play && !c.Upload)
}
