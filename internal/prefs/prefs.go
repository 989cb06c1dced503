// Package prefs is the file-backed preferences store. It persists
// presentation conveniences only (last login email, API address
// override) — entity data is never cached across sessions.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type data struct {
	LastEmail string `json:"last_email,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

// Prefs holds the preferences and writes them back atomically.
type Prefs struct {
	file  string
	mu    sync.RWMutex
	dirty bool
	data  data
}

// New loads the preferences from file. A missing file yields empty
// preferences; a malformed one is an error.
func New(file string) (*Prefs, error) {
	p := &Prefs{file: file}

	raw, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		return nil, err
	}
	return p, nil
}

// LastEmail returns the email used on the last successful login.
func (p *Prefs) LastEmail() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.LastEmail
}

// SetLastEmail records the email to prefill on the next login screen.
func (p *Prefs) SetLastEmail(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data.LastEmail == email {
		return
	}
	p.data.LastEmail = email
	p.dirty = true
}

// BaseURL returns the stored API address override, or "".
func (p *Prefs) BaseURL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.BaseURL
}

// SetBaseURL records an API address override.
func (p *Prefs) SetBaseURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data.BaseURL == url {
		return
	}
	p.data.BaseURL = url
	p.dirty = true
}

// Save writes the preferences when changed. The write goes through a
// temp file and rename so a crash never leaves a truncated file.
func (p *Prefs) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dirty {
		return nil
	}

	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.file), 0755); err != nil {
		return err
	}

	tmp := p.file + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, p.file); err != nil {
		return err
	}

	p.dirty = false
	return nil
}
