package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/tilawa/internal/playback"
)

// GetVolume returns the saved session volume, or ok=false when none was saved.
func (m *Manager) GetVolume() (volume float64, ok bool, err error) {
	row := m.db.QueryRow(`SELECT volume FROM player_state WHERE id = 1`)
	err = row.Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) {
		return playback.DefaultVolume, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return volume, true, nil
}

// SaveVolume persists the volume after a short debounce, so holding a
// volume key writes once.
func (m *Manager) SaveVolume(volume float64) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &volume

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func saveVolume(db *sql.DB, volume float64) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET volume = excluded.volume
	`, volume)
	return err
}

// GetTheme returns the saved theme name, or "" when none was saved.
func (m *Manager) GetTheme() (string, error) {
	var theme string
	err := m.db.QueryRow(`SELECT theme FROM player_state WHERE id = 1`).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return theme, err
}

// SaveTheme persists the theme name.
func (m *Manager) SaveTheme(theme string) error {
	_, err := m.db.Exec(`
		INSERT INTO player_state (id, volume, theme) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET theme = excluded.theme
	`, playback.DefaultVolume, theme)
	return err
}
