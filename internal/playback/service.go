package playback

import (
	"time"

	"github.com/llehouerou/tilawa/internal/media"
)

// Service is the single owner of "what is currently playing".
//
// Operations never fail from the caller's point of view: rejected play
// requests and media errors reset the session to idle, are logged, and are
// reported asynchronously on Subscription.Error.
type Service interface {
	// BindAndPlay silences any other bound element, binds el under id and
	// requests playback. Calling it with the already bound element resumes.
	BindAndPlay(el media.Element, id ItemID)
	Pause()
	Stop()
	SeekTo(position time.Duration)
	SetVolume(level float64)

	Session() Session
	// Bound returns the bound element, or nil when idle.
	Bound() media.Element

	Subscribe() *Subscription
	Close() error
}
