package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FilePersister guarda la sesión como JSON en disco (0600).
type FilePersister struct {
	path string
}

// DefaultPath resuelve el archivo de sesión bajo el config dir del usuario.
func DefaultPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "pethome", "session.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pethome", "session.json")
}

func NewFilePersister(path string) *FilePersister {
	if path == "" {
		path = DefaultPath()
	}
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() (Session, error) {
	b, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil // sin archivo => sin sesión
		}
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		// Archivo corrupto: lo tratamos como sesión vacía, el usuario
		// simplemente vuelve a loguearse.
		return Session{}, nil
	}
	return s, nil
}

func (p *FilePersister) Store(s Session) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	// write + rename para que la escritura sea atómica a nivel de archivo
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// MemoryPersister es el persister para tests y modo efímero.
type MemoryPersister struct {
	mu  sync.Mutex
	cur Session
}

func NewMemoryPersister() *MemoryPersister { return &MemoryPersister{} }

func (p *MemoryPersister) Load() (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur, nil
}

func (p *MemoryPersister) Store(s Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cur = s
	return nil
}
