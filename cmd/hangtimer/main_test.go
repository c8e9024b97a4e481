package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromSettings(t *testing.T) {
	tests := []struct {
		name       string
		settings   []debug.BuildSetting
		wantCommit string
		wantDate   string
	}{
		{
			name:       "empty settings",
			wantCommit: "unknown",
			wantDate:   "unknown",
		},
		{
			name: "revision and time",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "9f3c2a1b7e"},
				{Key: "vcs.time", Value: "2026-03-02T18:30:00Z"},
			},
			wantCommit: "9f3c2a1",
			wantDate:   "2026-03-02T18:30:00Z",
		},
		{
			name: "dirty tree listed before revision",
			settings: []debug.BuildSetting{
				{Key: "vcs.modified", Value: "true"},
				{Key: "vcs.revision", Value: "9f3c2a1b7e"},
			},
			wantCommit: "9f3c2a1-dirty",
			wantDate:   "unknown",
		},
		{
			name: "short revision ignored",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "9f3"},
				{Key: "vcs.modified", Value: "true"},
			},
			wantCommit: "unknown",
			wantDate:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCommit, gotDate := versionFromSettings(tt.settings)
			assert.Equal(t, tt.wantCommit, gotCommit)
			assert.Equal(t, tt.wantDate, gotDate)
		})
	}
}

func TestVersionFromBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		mainVersion string
		want        string
	}{
		{name: "local build", mainVersion: "(devel)", want: "dev"},
		{name: "no module version", mainVersion: "", want: "dev"},
		{name: "go install", mainVersion: "v0.4.1", want: "v0.4.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &debug.BuildInfo{
				Main:     debug.Module{Version: tt.mainVersion},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}},
			}
			v, c, d := versionFromBuildInfo(info)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, "0123456", c)
			assert.Equal(t, "unknown", d)
		})
	}
}
