package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mpreston/factdrill/internal/profile"
)

// ErrProfileNotFound is returned by LoadProfile for an unknown name.
var ErrProfileNotFound = errors.New("profile not found")

// maxRecentProfiles bounds the recently-played list kept in app_state.
const maxRecentProfiles = 10

// ProfileInfo is a directory entry for one stored profile.
type ProfileInfo struct {
	Name        string
	UpdatedAtMs int64
}

// ProfileRepo manages stored profile documents. SaveProfile satisfies
// engine.Saver so the engine can persist directly against the store.
type ProfileRepo interface {
	// SaveProfile upserts the profile document and bumps the recency list.
	SaveProfile(ctx context.Context, p *profile.Profile) error

	// LoadProfile returns the named profile, repairing a damaged document
	// field by field. Returns ErrProfileNotFound for unknown names.
	LoadProfile(ctx context.Context, name string) (*profile.Profile, error)

	// ListProfiles returns all profiles, most recently updated first.
	ListProfiles(ctx context.Context) ([]ProfileInfo, error)

	// DeleteProfile removes the profile and its attempt history.
	DeleteProfile(ctx context.Context, name string) error

	// RecentNames returns up to 10 names in recency order, filtered to
	// profiles that still exist.
	RecentNames(ctx context.Context) ([]string, error)
}

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) SaveProfile(ctx context.Context, p *profile.Profile) error {
	doc, err := profile.Encode(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (name, doc, updated_at_ms) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at_ms = excluded.updated_at_ms`,
		p.Name, string(doc), p.UpdatedAtMs)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return r.touchRecent(ctx, p.Name)
}

func (r *profileRepo) LoadProfile(ctx context.Context, name string) (*profile.Profile, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM profiles WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile.Decode(name, []byte(doc)), nil
}

func (r *profileRepo) ListProfiles(ctx context.Context) ([]ProfileInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, updated_at_ms FROM profiles ORDER BY updated_at_ms DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var infos []ProfileInfo
	for rows.Next() {
		var info ProfileInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAtMs); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (r *profileRepo) DeleteProfile(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE profile = ?`, name); err != nil {
		return fmt.Errorf("delete attempts: %w", err)
	}
	return r.dropRecent(ctx, name)
}

func (r *profileRepo) RecentNames(ctx context.Context) ([]string, error) {
	recent, err := r.recentList(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, name := range recent {
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM profiles WHERE name = ?`, name).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

const recentKey = "recent_profiles"

func (r *profileRepo) recentList(ctx context.Context) ([]string, error) {
	raw, err := getState(ctx, r.db, recentKey)
	if err != nil || raw == "" {
		return nil, err
	}
	var names []string
	if jsonErr := json.Unmarshal([]byte(raw), &names); jsonErr != nil {
		// A damaged recency list is not worth failing over.
		return nil, nil
	}
	return names, nil
}

func (r *profileRepo) touchRecent(ctx context.Context, name string) error {
	recent, err := r.recentList(ctx)
	if err != nil {
		return err
	}
	names := []string{name}
	for _, n := range recent {
		if !strings.EqualFold(n, name) {
			names = append(names, n)
		}
	}
	if len(names) > maxRecentProfiles {
		names = names[:maxRecentProfiles]
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return setState(ctx, r.db, recentKey, string(raw))
}

func (r *profileRepo) dropRecent(ctx context.Context, name string) error {
	recent, err := r.recentList(ctx)
	if err != nil {
		return err
	}
	names := recent[:0]
	for _, n := range recent {
		if !strings.EqualFold(n, name) {
			names = append(names, n)
		}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return setState(ctx, r.db, recentKey, string(raw))
}

func getState(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func setState(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// legacyRecordKey is where pre-profile releases kept the single shared
// stats document.
const legacyRecordKey = "player_record"

// legacyProfileName is the profile a legacy record is adopted under.
const legacyProfileName = "Player"

// adoptLegacyRecord converts an old single-player record into a regular
// profile. Runs once: the record is removed after adoption, and adoption
// is skipped entirely when any profile already exists.
func (s *Store) adoptLegacyRecord() error {
	ctx := context.Background()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw, err := getState(ctx, s.db, legacyRecordKey)
	if err != nil || raw == "" {
		return err
	}

	p := profile.Decode(legacyProfileName, []byte(raw))
	repo := &profileRepo{db: s.db}
	if err := repo.SaveProfile(ctx, p); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, legacyRecordKey)
	return err
}
