package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// Keys of the persisted player profile.
const (
	KeyBestScore   = "best_score"
	KeyTotalShards = "total_shards"
	KeySettings    = "settings"
	KeyCosmetics   = "cosmetics"
	KeyEquipped    = "equipped"
)

// ErrInsufficientShards is returned when a purchase costs more than the
// shard balance.
var ErrInsufficientShards = errors.New("runner: not enough shards")

// KeyValue is the persisted local state the game reads and writes.
// Get reports ok=false for a missing key.
type KeyValue interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Settings are the player's presentation toggles.
type Settings struct {
	Sound    bool   `json:"sound"`
	Music    bool   `json:"music"`
	Haptics  bool   `json:"haptics"`
	Graphics string `json:"graphics"` // low, medium, high
}

// DefaultSettings returns the settings of a fresh profile.
func DefaultSettings() Settings {
	return Settings{Sound: true, Music: true, Haptics: true, Graphics: "medium"}
}

// Profile wraps a KeyValue with typed accessors.
type Profile struct {
	kv KeyValue
}

// NewProfile creates a profile over kv.
func NewProfile(kv KeyValue) *Profile {
	return &Profile{kv: kv}
}

// BestScore returns the stored best score, 0 when unset.
func (p *Profile) BestScore() (int, error) {
	return p.getInt(KeyBestScore)
}

// RecordScore stores score if it beats the best and reports whether it did.
func (p *Profile) RecordScore(score int) (bool, error) {
	best, err := p.BestScore()
	if err != nil {
		return false, err
	}
	if score <= best {
		return false, nil
	}
	return true, p.kv.Set(KeyBestScore, strconv.Itoa(score))
}

// TotalShards returns the shard balance across runs.
func (p *Profile) TotalShards() (int, error) {
	return p.getInt(KeyTotalShards)
}

// AddShards credits n shards and returns the new balance.
func (p *Profile) AddShards(n int) (int, error) {
	total, err := p.TotalShards()
	if err != nil {
		return 0, err
	}
	total += n
	return total, p.kv.Set(KeyTotalShards, strconv.Itoa(total))
}

// Settings returns the stored settings or the defaults.
func (p *Profile) Settings() (Settings, error) {
	s := DefaultSettings()
	err := p.getJSON(KeySettings, &s)
	return s, err
}

// SaveSettings stores s.
func (p *Profile) SaveSettings(s Settings) error {
	return p.setJSON(KeySettings, s)
}

// Owned returns the set of owned cosmetic ids.
func (p *Profile) Owned() (map[string]bool, error) {
	owned := map[string]bool{}
	err := p.getJSON(KeyCosmetics, &owned)
	return owned, err
}

// Purchase spends price shards on cosmetic id. Owning it already is a no-op.
func (p *Profile) Purchase(id string, price int) error {
	owned, err := p.Owned()
	if err != nil {
		return err
	}
	if owned[id] {
		return nil
	}
	total, err := p.TotalShards()
	if err != nil {
		return err
	}
	if total < price {
		return ErrInsufficientShards
	}
	if err := p.kv.Set(KeyTotalShards, strconv.Itoa(total-price)); err != nil {
		return err
	}
	owned[id] = true
	return p.setJSON(KeyCosmetics, owned)
}

// Equipped returns the equipped cosmetic per slot (e.g. "skin").
func (p *Profile) Equipped() (map[string]string, error) {
	eq := map[string]string{}
	err := p.getJSON(KeyEquipped, &eq)
	return eq, err
}

// Equip sets the cosmetic for slot.
func (p *Profile) Equip(slot, id string) error {
	eq, err := p.Equipped()
	if err != nil {
		return err
	}
	eq[slot] = id
	return p.setJSON(KeyEquipped, eq)
}

func (p *Profile) getInt(key string) (int, error) {
	v, ok, err := p.kv.Get(key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("runner: profile %s: %w", key, err)
	}
	return n, nil
}

func (p *Profile) getJSON(key string, dst any) error {
	v, ok, err := p.kv.Get(key)
	if err != nil || !ok {
		return err
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		return fmt.Errorf("runner: profile %s: %w", key, err)
	}
	return nil
}

func (p *Profile) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.kv.Set(key, string(data))
}

// MemoryKV is a KeyValue kept in process memory.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

// Get implements KeyValue.
func (s *MemoryKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set implements KeyValue.
func (s *MemoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
