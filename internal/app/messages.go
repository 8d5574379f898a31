// Package app contains the root bubbletea model of the player.
package app

import (
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/prayer"
)

// ServiceStateChangedMsg is sent when the session state or active item changes.
type ServiceStateChangedMsg struct {
	Change playback.StateChange
}

// ServicePositionChangedMsg is sent on position and duration updates.
type ServicePositionChangedMsg struct {
	Change playback.PositionChange
}

// ServiceVolumeChangedMsg is sent when the session volume changes.
type ServiceVolumeChangedMsg struct {
	Volume float64
}

// ServiceErrorMsg is sent when playback of the bound item failed.
type ServiceErrorMsg struct {
	Event playback.ErrorEvent
}

// ServiceClosedMsg is sent when the playback service shuts down.
type ServiceClosedMsg struct{}

// StderrMsg carries a line written to stderr by the audio backend.
type StderrMsg struct {
	Line string
}

// PrayerLoadedMsg carries today's prayer times.
type PrayerLoadedMsg struct {
	Timings *prayer.Timings
	Err     error
}

// BannerLoadedMsg carries the sadaqa banner text. Text holds the fallback
// dua when Err is set.
type BannerLoadedMsg struct {
	Text string
	Err  error
}
