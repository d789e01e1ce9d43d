package maven

import (
	"fmt"
	"strings"
)

// Coordinate identifies a published Maven artifact.
//
// All three fields must be non-empty; [ParseCoordinate] enforces this for
// caller-supplied input. The value is never mutated after construction.
type Coordinate struct {
	GroupID    string // dot-delimited namespace (e.g., "com.google.guava")
	ArtifactID string // artifact name (e.g., "guava")
	Version    string // exact version (e.g., "32.1.3-jre")
}

// ParseCoordinate parses a coordinate string in the form
// "groupId:artifactId:version".
//
// Examples: "org.springframework:spring-beans:7.0.1",
// "com.github.PhilJay:MPAndroidChart:v3.1.0".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Coordinate{}, fmt.Errorf("invalid maven coordinate %q (expected groupId:artifactId:version)", s)
	}
	return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
}

// String returns the canonical "groupId:artifactId:version" form.
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// DescriptorPath returns the repository-relative path of the artifact's POM
// descriptor: the groupId with dots replaced by slashes, followed by
// artifactId, version, and the "artifactId-version.pom" filename.
//
// Pure function; empty fields are a caller contract violation and are not
// defended against here.
func (c Coordinate) DescriptorPath() string {
	groupPath := strings.ReplaceAll(c.GroupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s-%s.pom", groupPath, c.ArtifactID, c.Version, c.ArtifactID, c.Version)
}
