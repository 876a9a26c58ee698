package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// CheckConfigCompatibility checks if the tool's config schema version and
// the version a config file declares are compatible.
// Returns nil if compatible, an ErrCodeInvalidVersion error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Schema 1.2.0, Config 1.2.0 -> OK (exact match)
//   - Schema 1.2.1, Config 1.2.0 -> OK (patch differs)
//   - Schema 1.3.0, Config 1.2.0 -> ERROR (minor differs)
//   - Schema 2.0.0, Config 1.2.0 -> ERROR (major differs)
//   - Schema main, Config 1.2.0 -> OK (dev build, skip check)
//   - Schema 1.2.0, Config main -> OK (dev build, skip check)
func CheckConfigCompatibility(schemaVersion, configVersion string) error {
	// Strip 'v' prefix if present for consistency
	schemaVersion = strings.TrimPrefix(schemaVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	// Skip version check for "main" (development builds)
	if schemaVersion == "main" || configVersion == "main" {
		return nil
	}

	schemaSemver, err := semver.NewVersion(schemaVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid schema version '%s'", schemaVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if schemaSemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: tool reads schema %d.x.x but config declares %d.x.x",
			schemaSemver.Major(), configSemver.Major())
	}

	if schemaSemver.Minor() != configSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"minor version mismatch: tool reads schema %d.%d.x but config declares %d.%d.x",
			schemaSemver.Major(), schemaSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
