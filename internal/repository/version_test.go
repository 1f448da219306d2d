// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsSnapshot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		want    bool
	}{
		{"1.0-SNAPSHOT", true},
		{"1.0-snapshot", true},
		{"SNAPSHOT", true},
		{"1.0-20170331.111529-1", true},
		{"2.3.4-20240101.000000-12", true},
		{"1.0", false},
		{"1.0-RC1", false},
		{"1.0-20170331-1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsSnapshot(tt.version))
		})
	}
}

func TestBaseVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.0-SNAPSHOT", BaseVersion("1.0-20170331.111529-1"))
	assert.Equal(t, "1.0-SNAPSHOT", BaseVersion("1.0-SNAPSHOT"))
	assert.Equal(t, "1.0", BaseVersion("1.0"))
}

func TestTimestampedVersion(t *testing.T) {
	t.Parallel()

	at := time.Date(2017, time.March, 31, 11, 15, 29, 0, time.UTC)
	assert.Equal(t, "1.0-20170331.111529-1", TimestampedVersion("1.0-SNAPSHOT", at, 1))
	assert.Equal(t, "1.0-20170331.111529-7", TimestampedVersion("1.0-snapshot", at, 7))

	local := at.In(time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, "1.0-20170331.111529-2", TimestampedVersion("1.0-SNAPSHOT", local, 2))
	assert.Equal(t, "1.0-SNAPSHOT", BaseVersion(TimestampedVersion("1.0-SNAPSHOT", at, 3)))
}
