// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"encoding/xml"
	"fmt"
	"slices"
	"time"
)

const (
	// MetadataFileName is the metadata file kept in remote repositories.
	MetadataFileName = "maven-metadata.xml"
	// LocalMetadataFileName is the metadata file kept in the local repository.
	LocalMetadataFileName = "maven-metadata-local.xml"
)

type (
	// Metadata is a maven-metadata.xml document. Artifact-level documents list
	// versions; version-level documents describe the latest unique snapshot.
	Metadata struct {
		XMLName      xml.Name    `xml:"metadata"`
		ModelVersion string      `xml:"modelVersion,attr,omitempty"`
		GroupID      string      `xml:"groupId,omitempty"`
		ArtifactID   string      `xml:"artifactId,omitempty"`
		Version      string      `xml:"version,omitempty"`
		Versioning   *Versioning `xml:"versioning,omitempty"`
	}

	// Versioning is the versioning element of a metadata document.
	Versioning struct {
		Latest           string            `xml:"latest,omitempty"`
		Release          string            `xml:"release,omitempty"`
		Snapshot         *Snapshot         `xml:"snapshot,omitempty"`
		Versions         []string          `xml:"versions>version,omitempty"`
		LastUpdated      string            `xml:"lastUpdated,omitempty"`
		SnapshotVersions []SnapshotVersion `xml:"snapshotVersions>snapshotVersion,omitempty"`
	}

	// Snapshot records the latest unique snapshot of a base version.
	Snapshot struct {
		Timestamp   string `xml:"timestamp,omitempty"`
		BuildNumber int    `xml:"buildNumber,omitempty"`
		LocalCopy   bool   `xml:"localCopy,omitempty"`
	}

	// SnapshotVersion maps an extension/classifier to its unique file version.
	SnapshotVersion struct {
		Classifier string `xml:"classifier,omitempty"`
		Extension  string `xml:"extension"`
		Value      string `xml:"value"`
		Updated    string `xml:"updated"`
	}
)

// NewMetadata returns an empty document for the artifact. version is set for
// version-level documents and left empty for artifact-level ones.
func NewMetadata(a Artifact, version string) *Metadata {
	return &Metadata{
		GroupID:    string(a.GroupID),
		ArtifactID: string(a.ArtifactID),
		Version:    version,
		Versioning: &Versioning{},
	}
}

// ParseMetadata decodes a maven-metadata.xml document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse repository metadata: %w", err)
	}
	if m.Versioning == nil {
		m.Versioning = &Versioning{}
	}
	return &m, nil
}

// Marshal encodes the document with an XML header.
func (m *Metadata) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode repository metadata: %w", err)
	}
	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}

// AddVersion records version in an artifact-level document: it is appended
// to the version list when new, becomes latest, and becomes release unless
// it is a snapshot.
func (m *Metadata) AddVersion(version string, at time.Time) {
	v := m.versioning()
	if !slices.Contains(v.Versions, version) {
		v.Versions = append(v.Versions, version)
	}
	v.Latest = version
	if !IsSnapshot(version) {
		v.Release = version
	}
	v.LastUpdated = at.UTC().Format(LastUpdatedFormat)
}

// NextBuildNumber returns the build number the next unique snapshot gets.
func (m *Metadata) NextBuildNumber() int {
	if m == nil || m.Versioning == nil || m.Versioning.Snapshot == nil {
		return 1
	}
	return m.Versioning.Snapshot.BuildNumber + 1
}

// SetSnapshot records a unique snapshot deploy in a version-level document,
// replacing any previous entry for the same extension and classifier.
func (m *Metadata) SetSnapshot(a Artifact, at time.Time, buildNumber int) {
	v := m.versioning()
	updated := at.UTC().Format(LastUpdatedFormat)
	v.Snapshot = &Snapshot{
		Timestamp:   at.UTC().Format(TimestampFormat),
		BuildNumber: buildNumber,
	}
	v.LastUpdated = updated

	entry := SnapshotVersion{
		Classifier: a.Classifier,
		Extension:  a.Extension,
		Value:      a.Version,
		Updated:    updated,
	}
	for i, sv := range v.SnapshotVersions {
		if sv.Extension == a.Extension && sv.Classifier == a.Classifier {
			v.SnapshotVersions[i] = entry
			return
		}
	}
	v.SnapshotVersions = append(v.SnapshotVersions, entry)
}

func (m *Metadata) versioning() *Versioning {
	if m.Versioning == nil {
		m.Versioning = &Versioning{}
	}
	return m.Versioning
}
