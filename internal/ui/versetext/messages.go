package versetext

import "github.com/llehouerou/tilawa/internal/quran"

// FetchedMsg carries the verses of one fetch. Gen is compared with the
// model's request generation; older responses are dropped.
type FetchedMsg struct {
	Gen    uint64
	Verses []quran.Verse
	Err    error
}

// ScrollMsg asks the view to center on Index once the scroll delay elapsed.
type ScrollMsg struct {
	Gen   uint64
	Index int
}
