package surface

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a bar of exactly width cells, filled from the
// left by position/duration.
func RenderProgressBar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(width)*ratio), width), 0)

	t := styles.T()
	return t.S().Playing.Render(strings.Repeat(filledBlock, filled)) +
		t.S().Subtle.Render(strings.Repeat(emptyBlock, width-filled))
}

// RenderTimes renders "position / duration".
func RenderTimes(position, duration time.Duration) string {
	return render.Duration(position) + " / " + render.Duration(duration)
}

// RenderVolume renders the volume indicator.
func RenderVolume(volume float64) string {
	icon := "🔊"
	if volume <= 0 {
		icon = "🔇"
	}
	return fmt.Sprintf("%s %3d%%", icon, int(volume*100+0.5))
}

// SeekTarget maps a click at column x of a bar width cells wide to a
// position. The bar always runs left to right.
func SeekTarget(x, width int, duration time.Duration) time.Duration {
	if width <= 0 || duration <= 0 {
		return 0
	}
	x = max(min(x, width), 0)
	return time.Duration(float64(duration) * float64(x) / float64(width))
}
