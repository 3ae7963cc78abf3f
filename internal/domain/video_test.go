package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoStatus_Next(t *testing.T) {
	tests := []struct {
		from     VideoStatus
		next     VideoStatus
		ok       bool
		terminal bool
	}{
		{from: VideoStatusBriefingSent, next: VideoStatusVideoPosted, ok: true},
		{from: VideoStatusVideoPosted, next: VideoStatusSentToGroup, ok: true},
		{from: VideoStatusSentToGroup, next: VideoStatusEngaged, ok: true},
		{from: VideoStatusEngaged, terminal: true},
		{from: VideoStatus("archived")},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			next, ok := tt.from.Next()

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.terminal, tt.from.IsTerminal())
		})
	}
}

func TestPackageStatus_IsFinal(t *testing.T) {
	assert.False(t, PackageStatusActive.IsFinal())
	assert.True(t, PackageStatusCompleted.IsFinal())
	assert.True(t, PackageStatusCancelled.IsFinal())
}

func TestAllEngaged(t *testing.T) {
	engaged := &Video{Status: VideoStatusEngaged}
	posted := &Video{Status: VideoStatusVideoPosted}

	assert.False(t, AllEngaged(nil))
	assert.False(t, AllEngaged([]*Video{engaged, posted}))
	assert.True(t, AllEngaged([]*Video{engaged, engaged}))
}
