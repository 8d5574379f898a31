package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/tilawa/internal/db"
	"github.com/llehouerou/tilawa/internal/quran"
)

// Verify Manager implements quran.Cache at compile time.
var _ quran.Cache = (*Manager)(nil)

// LoadSurah returns a cached surah. ok is false when it is not cached.
func (m *Manager) LoadSurah(number int, edition string) (*quran.Surah, bool, error) {
	s := &quran.Surah{}
	var revelation sql.NullString
	err := m.db.QueryRow(`
		SELECT surah, name, english_name, verse_count, revelation_type
		FROM cached_surahs WHERE edition = ? AND surah = ?
	`, edition, number).Scan(&s.Number, &s.Name, &s.EnglishName, &s.NumberOfVerses, &revelation)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.RevelationType = db.NullString(revelation)

	rows, err := m.db.Query(`
		SELECT number, number_in_surah, text, juz, page
		FROM cached_verses WHERE edition = ? AND surah = ?
		ORDER BY number_in_surah
	`, edition, number)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var v quran.Verse
		var juz, page sql.NullInt64
		if err := rows.Scan(&v.Number, &v.NumberInSurah, &v.Text, &juz, &page); err != nil {
			return nil, false, err
		}
		v.Juz = db.NullInt(juz)
		v.Page = db.NullInt(page)
		s.Verses = append(s.Verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	// A surah row without verses is a partial write; treat as a miss.
	if len(s.Verses) == 0 {
		return nil, false, nil
	}
	return s, true, nil
}

// SaveSurah replaces the cached copy of a surah in one transaction.
func (m *Manager) SaveSurah(s *quran.Surah, edition string) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM cached_verses WHERE edition = ? AND surah = ?`, edition, s.Number); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO cached_surahs (edition, surah, name, english_name, verse_count, revelation_type, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(edition, surah) DO UPDATE SET
				name = excluded.name,
				english_name = excluded.english_name,
				verse_count = excluded.verse_count,
				revelation_type = excluded.revelation_type,
				fetched_at = excluded.fetched_at
		`, edition, s.Number, s.Name, s.EnglishName, s.NumberOfVerses, s.RevelationType, time.Now().Unix())
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO cached_verses (edition, surah, number_in_surah, number, text, juz, page)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, v := range s.Verses {
			if _, err := stmt.Exec(edition, s.Number, v.NumberInSurah, v.Number, v.Text, v.Juz, v.Page); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearVerseCache removes every cached surah.
func (m *Manager) ClearVerseCache() error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM cached_verses`); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM cached_surahs`)
		return err
	})
}
