package maven

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Project holds the parts of a parsed pom.xml relevant to dependency aging.
type Project struct {
	GroupID      string
	ArtifactID   string
	Version      string
	Name         string
	Dependencies []Coordinate // direct, datable dependencies in file order
	Skipped      []string     // coordinates excluded from aging, with reason
}

// Coordinate returns the project's own "groupId:artifactId" identity.
func (p *Project) Coordinate() string {
	return p.GroupID + ":" + p.ArtifactID
}

// ParsePOMFile reads and parses the pom.xml at path.
func ParsePOMFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePOM(data)
}

// ParsePOM parses pom.xml content and extracts the direct dependencies that
// can be dated.
//
// Dependencies are excluded when they are test or provided scope, marked
// optional, reference unresolved Maven properties (${...}), or carry no
// explicit version (parent-managed versions cannot be resolved to a
// repository path). Excluded entries are listed in [Project.Skipped] with a
// reason. Duplicates keep their first occurrence.
func ParsePOM(data []byte) (*Project, error) {
	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("parsing pom: %w", err)
	}

	groupID := pom.GroupID
	if groupID == "" && pom.Parent != nil {
		groupID = pom.Parent.GroupID
	}
	version := pom.Version
	if version == "" && pom.Parent != nil {
		version = pom.Parent.Version
	}

	p := &Project{
		GroupID:    groupID,
		ArtifactID: pom.ArtifactID,
		Version:    version,
		Name:       pom.Name,
	}

	seen := make(map[string]bool)
	for _, dep := range pom.Dependencies {
		id := dep.GroupID + ":" + dep.ArtifactID
		switch {
		case dep.Scope == "test" || dep.Scope == "provided":
			p.Skipped = append(p.Skipped, id+" ("+dep.Scope+" scope)")
		case dep.Optional == "true":
			p.Skipped = append(p.Skipped, id+" (optional)")
		case strings.Contains(dep.GroupID, "${") || strings.Contains(dep.ArtifactID, "${") || strings.Contains(dep.Version, "${"):
			p.Skipped = append(p.Skipped, id+" (unresolved property)")
		case dep.Version == "":
			p.Skipped = append(p.Skipped, id+" (no explicit version)")
		case seen[id]:
			// first occurrence wins
		default:
			seen[id] = true
			p.Dependencies = append(p.Dependencies, Coordinate{
				GroupID:    dep.GroupID,
				ArtifactID: dep.ArtifactID,
				Version:    dep.Version,
			})
		}
	}
	return p, nil
}

type pomProject struct {
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Name         string          `xml:"name"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
	Parent       *pomParent      `xml:"parent"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}
