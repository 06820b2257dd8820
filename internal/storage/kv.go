package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// KV is a string key-value namespace backed by the profile_kv table.
type KV struct {
	db      *sql.DB
	profile string
}

// KV returns the namespace of profile. The local player uses "local";
// SSH sessions use their user name.
func (s *Store) KV(profile string) *KV {
	return &KV{db: s.db, profile: profile}
}

// Get returns the value stored under key.
func (k *KV) Get(key string) (string, bool, error) {
	var v string
	err := k.db.QueryRow(
		"SELECT value FROM profile_kv WHERE profile = ? AND key = ?",
		k.profile, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(
		`INSERT INTO profile_kv (profile, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value`,
		k.profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}
