// SPDX-License-Identifier: MPL-2.0

package repository

import "github.com/goots/pom-deployer/pkg/types"

// PackagingPOM is the packaging (and file extension) of a descriptor artifact.
const PackagingPOM = "pom"

// Artifact identifies one file in a repository.
//
// Version is the version used in the file name; for deployed unique snapshots
// it is the timestamped version while BaseVersion stays "x-SNAPSHOT" and
// names the directory.
type Artifact struct {
	GroupID     types.GroupID
	ArtifactID  types.ArtifactID
	Version     string
	BaseVersion string
	Classifier  string
	Extension   string
}

// NewPOMArtifact returns the descriptor artifact for the given coordinates.
func NewPOMArtifact(groupID types.GroupID, artifactID types.ArtifactID, version string) Artifact {
	return Artifact{
		GroupID:     groupID,
		ArtifactID:  artifactID,
		Version:     version,
		BaseVersion: BaseVersion(version),
		Extension:   PackagingPOM,
	}
}

// WithVersion returns a copy of the artifact whose file name uses version.
// BaseVersion is kept.
func (a Artifact) WithVersion(version string) Artifact {
	a.Version = version
	return a
}

// FileName returns artifactId-version[-classifier].extension.
func (a Artifact) FileName() string {
	name := string(a.ArtifactID) + "-" + a.Version
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	return name + "." + a.Extension
}

// String returns groupId:artifactId:extension:version.
func (a Artifact) String() string {
	return string(a.GroupID) + ":" + string(a.ArtifactID) + ":" + a.Extension + ":" + a.Version
}
