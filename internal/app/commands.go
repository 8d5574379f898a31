package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/stderr"
)

const (
	prayerTimeout = 15 * time.Second
	bannerTimeout = 15 * time.Second
)

// WatchServiceEvents returns a command that waits for the next playback
// session event and converts it to a tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Change: e}
		case e := <-sub.PositionChanged:
			return ServicePositionChangedMsg{Change: e}
		case e := <-sub.VolumeChanged:
			return ServiceVolumeChangedMsg{Volume: e.Volume}
		case e := <-sub.Error:
			return ServiceErrorMsg{Event: e}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchStderr returns a command that waits for the next captured stderr line.
func WatchStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}

func (m Model) loadPrayerCmd() tea.Cmd {
	if m.prayer == nil {
		return nil
	}
	src, loc := m.prayer, m.location
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), prayerTimeout)
		defer cancel()
		timings, err := src.Timings(ctx, loc.Latitude, loc.Longitude)
		return PrayerLoadedMsg{Timings: timings, Err: err}
	}
}

func (m Model) loadBannerCmd() tea.Cmd {
	if m.banners == nil {
		return nil
	}
	src := m.banners
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bannerTimeout)
		defer cancel()
		text, err := src.Sadaqa(ctx)
		return BannerLoadedMsg{Text: text, Err: err}
	}
}
