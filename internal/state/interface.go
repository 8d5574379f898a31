// internal/state/interface.go
package state

import (
	"github.com/llehouerou/tilawa/internal/quran"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	quran.Cache
	GetVolume() (float64, bool, error)
	SaveVolume(volume float64)
	GetTheme() (string, error)
	SaveTheme(theme string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
