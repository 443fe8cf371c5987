package settings

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/brainrot-academy/academy-client/internal/storage"
)

const darkModeKey = "dark_mode"

// Settings is the explicit home of user preferences.
type Settings struct {
	mu    sync.Mutex
	store storage.Store
}

// New wraps store. A nil store keeps settings in memory.
func New(store storage.Store) *Settings {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &Settings{store: store}
}

// DarkMode reports whether the dark theme is active. It is on unless
// explicitly turned off.
func (s *Settings) DarkMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode()
}

// SetDarkMode persists the theme preference.
func (s *Settings) SetDarkMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setDarkMode(on)
}

// ToggleDarkMode flips the theme and returns the new value.
func (s *Settings) ToggleDarkMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	on, err := s.darkMode()
	if err != nil {
		return false, err
	}
	if err := s.setDarkMode(!on); err != nil {
		return on, err
	}
	return !on, nil
}

// Theme names the active theme.
func (s *Settings) Theme() (string, error) {
	on, err := s.DarkMode()
	if err != nil {
		return "", err
	}
	if on {
		return "dark", nil
	}
	return "light", nil
}

func (s *Settings) darkMode() (bool, error) {
	raw, ok, err := s.store.Get(darkModeKey)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", darkModeKey, err)
	}
	if !ok {
		return true, nil
	}
	on, err := strconv.ParseBool(string(raw))
	if err != nil {
		// unreadable values fall back to the default theme
		return true, nil
	}
	return on, nil
}

func (s *Settings) setDarkMode(on bool) error {
	if err := s.store.Put(darkModeKey, []byte(strconv.FormatBool(on))); err != nil {
		return fmt.Errorf("write %s: %w", darkModeKey, err)
	}
	return nil
}
