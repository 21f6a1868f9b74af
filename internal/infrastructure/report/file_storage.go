package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/internal/domain/entity"
)

// DiskStorage guarda los reportes generados en un directorio plano.
type DiskStorage struct {
	dir string
}

// NewDiskStorage crea el directorio si no existe.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: crear directorio: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

// Path ruta absoluta de un archivo; el nombre no puede contener separadores.
func (s *DiskStorage) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", domain.ErrNotFound
	}
	return filepath.Join(s.dir, name), nil
}

// Save escribe el archivo y devuelve sus metadatos.
func (s *DiskStorage) Save(name string, data []byte) (entity.ReportFile, error) {
	p, err := s.Path(name)
	if err != nil {
		return entity.ReportFile{}, fmt.Errorf("report: nombre inválido %q: %w", name, domain.ErrInvalidInput)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return entity.ReportFile{}, fmt.Errorf("report: guardar archivo: %w", err)
	}
	return s.Stat(name)
}

// Stat metadatos de un archivo; domain.ErrNotFound si no existe.
func (s *DiskStorage) Stat(name string) (entity.ReportFile, error) {
	p, err := s.Path(name)
	if err != nil {
		return entity.ReportFile{}, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return entity.ReportFile{}, domain.ErrNotFound
	}
	if err != nil {
		return entity.ReportFile{}, fmt.Errorf("report: stat: %w", err)
	}
	return toFile(info), nil
}

// List devuelve los archivos del directorio, más recientes primero.
func (s *DiskStorage) List() ([]entity.ReportFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("report: listar archivos: %w", err)
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].ModTime().Equal(infos[j].ModTime()) {
			return infos[i].Name() > infos[j].Name()
		}
		return infos[i].ModTime().After(infos[j].ModTime())
	})
	out := make([]entity.ReportFile, 0, len(infos))
	for _, info := range infos {
		out = append(out, toFile(info))
	}
	return out, nil
}

func toFile(info fs.FileInfo) entity.ReportFile {
	return entity.ReportFile{
		Name:      info.Name(),
		Size:      info.Size(),
		SizeLabel: SizeLabel(info.Size()),
		CreatedAt: dto.FormatTimestamp(info.ModTime()),
	}
}

// SizeLabel tamaño legible: "512 B", "1.50 KB", "2.25 MB".
func SizeLabel(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	units := []string{"KB", "MB", "GB"}
	v := float64(n) / unit
	i := 0
	for v >= unit && i < len(units)-1 {
		v /= unit
		i++
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}
