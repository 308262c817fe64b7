package dialect

// Version information for dialect.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/dialect.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "dialect"

	// Description is a short description of the application.
	Description = "American/British English translator with highlighted diffs"

	// Version is the semantic version of the application.
	Version = "0.3.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/dialect"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information, set via ldflags.
var (
	GitCommit = "unknown"
	GitBranch = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version string with the short commit when known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns a user agent string for HTTP requests.
func UserAgent() string {
	return Name + "/" + FullVersion()
}
