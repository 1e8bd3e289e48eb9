// Package snapshot implementa la persistencia de fotos del ledger: archivo
// JSON local o tabla JSONB en PostgreSQL.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// FileStore guarda la foto como un archivo JSON. Escribe a un archivo
// temporal del mismo directorio y renombra, para que una caída a mitad de
// escritura nunca deje una foto corrupta.
type FileStore struct {
	path string
}

// NewFileStore construye el store sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ repository.SnapshotStore = (*FileStore)(nil)

// Save serializa y escribe la foto de forma atómica.
func (s *FileStore) Save(_ context.Context, snap *repository.LedgerSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("snapshot: crear directorio: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: serializar: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("snapshot: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("snapshot: renombrar: %w", err)
	}
	return nil
}

// Load lee la última foto guardada; (nil, nil) si no existe todavía.
func (s *FileStore) Load(_ context.Context) (*repository.LedgerSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: leer: %w", err)
	}
	var snap repository.LedgerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: deserializar: %w", err)
	}
	if snap.SchemaVersion != repository.SnapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot: versión de esquema no soportada: %d", snap.SchemaVersion)
	}
	return &snap, nil
}
