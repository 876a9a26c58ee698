package version

// Version is the current version of the argo-monthly tool.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-monthly/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "v1.2.0"

// ConfigSchemaVersion is the version of the YAML config schema this build
// reads. Config files declare the schema version they were written against.
var ConfigSchemaVersion = "v1.0.0"

// GetVersion returns the current version of the tool.
func GetVersion() string {
	return Version
}
