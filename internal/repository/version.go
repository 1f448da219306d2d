// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// SnapshotQualifier marks a version as a moving development build.
	SnapshotQualifier = "SNAPSHOT"

	// TimestampFormat is the layout of the timestamp part of a unique snapshot version.
	TimestampFormat = "20060102.150405"
	// LastUpdatedFormat is the layout of metadata lastUpdated and updated fields.
	LastUpdatedFormat = "20060102150405"
)

// timestampedVersion matches deployed snapshot versions: 1.0-20170331.111529-1.
var timestampedVersion = regexp.MustCompile(`^(.*)-([0-9]{8}\.[0-9]{6})-([0-9]+)$`)

// IsSnapshot reports whether version denotes a snapshot, either by its
// SNAPSHOT suffix (any case) or because it already is a timestamped snapshot.
func IsSnapshot(version string) bool {
	if version == "" {
		return false
	}
	if strings.HasSuffix(strings.ToUpper(version), SnapshotQualifier) {
		return true
	}
	return timestampedVersion.MatchString(version)
}

// BaseVersion maps a timestamped snapshot version back to its -SNAPSHOT
// form. Every other version is returned unchanged.
func BaseVersion(version string) string {
	m := timestampedVersion.FindStringSubmatch(version)
	if m == nil {
		return version
	}
	return m[1] + "-" + SnapshotQualifier
}

// TimestampedVersion builds the unique file version for a snapshot deploy:
// "1.0-SNAPSHOT" at build 3 becomes "1.0-20170331.111529-3".
func TimestampedVersion(baseVersion string, at time.Time, buildNumber int) string {
	prefix := baseVersion
	if len(prefix) >= len(SnapshotQualifier) &&
		strings.EqualFold(prefix[len(prefix)-len(SnapshotQualifier):], SnapshotQualifier) {
		prefix = prefix[:len(prefix)-len(SnapshotQualifier)]
	}
	return prefix + at.UTC().Format(TimestampFormat) + "-" + strconv.Itoa(buildNumber)
}
