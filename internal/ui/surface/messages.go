package surface

import (
	"github.com/llehouerou/tilawa/internal/download"
	"github.com/llehouerou/tilawa/internal/media"
	"github.com/llehouerou/tilawa/internal/playback"
)

// ElementMsg delivers an event of a surface's element. Gen identifies the
// element instance; events of replaced elements are ignored.
type ElementMsg struct {
	Item  playback.ItemID
	Gen   uint64
	Event media.Event
}

// DownloadedMsg reports the outcome of a download.
type DownloadedMsg struct {
	Item   playback.ItemID
	Result download.Result
	Err    error
}
