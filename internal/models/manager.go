package models

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Progress информация о прогрессе загрузки.
type Progress struct {
	ModelID    string
	Downloaded int64
	Total      int64
	Done       bool
}

// Manager управляет моделями на диске.
type Manager struct {
	modelsDir string
	client    *http.Client
	mu        sync.Mutex
}

// NewManager создаёт менеджер моделей в dir.
// Пустой dir означает директорию models/ рядом с бинарником.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		execPath, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
		}
		execPath, err = filepath.EvalSymlinks(execPath)
		if err != nil {
			return nil, fmt.Errorf("не удалось разрешить симлинки: %w", err)
		}
		dir = filepath.Join(filepath.Dir(execPath), "models")
	}

	if err := os.MkdirAll(filepath.Join(dir, string(EngineVosk)), 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию моделей: %w", err)
	}

	return &Manager{modelsDir: dir, client: http.DefaultClient}, nil
}

// ModelsDir возвращает путь к директории моделей.
func (m *Manager) ModelsDir() string {
	return m.modelsDir
}

// GetModelPath возвращает полный путь к модели.
func (m *Manager) GetModelPath(info ModelInfo) string {
	return filepath.Join(m.modelsDir, string(info.Engine), info.Filename)
}

// IsDownloaded проверяет, что модель лежит на диске.
func (m *Manager) IsDownloaded(info ModelInfo) bool {
	stat, err := os.Stat(m.GetModelPath(info))
	if err != nil {
		return false
	}
	if info.IsZip {
		return stat.IsDir()
	}
	return stat.Size() > 0
}

// ListDownloaded возвращает список скачанных моделей.
func (m *Manager) ListDownloaded() []ModelInfo {
	var downloaded []ModelInfo
	for _, model := range Registry {
		if m.IsDownloaded(model) {
			downloaded = append(downloaded, model)
		}
	}
	return downloaded
}

// Download скачивает модель и распаковывает архив.
// progress получает обновления о прогрессе (можно nil).
func (m *Manager) Download(ctx context.Context, info ModelInfo, progress chan<- Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsDownloaded(info) {
		if progress != nil {
			progress <- Progress{ModelID: info.ID, Downloaded: info.Size, Total: info.Size, Done: true}
		}
		return nil
	}

	tmp, err := os.CreateTemp(m.modelsDir, "download-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	total, err := m.fetch(ctx, info, tmp, progress)
	tmp.Close()
	if err != nil {
		return err
	}

	destPath := m.GetModelPath(info)
	if info.IsZip {
		if err := unzip(tmpPath, filepath.Dir(destPath)); err != nil {
			return fmt.Errorf("ошибка распаковки: %w", err)
		}
	} else if err := os.Rename(tmpPath, destPath); err != nil {
		return err
	}

	if progress != nil {
		progress <- Progress{ModelID: info.ID, Downloaded: total, Total: total, Done: true}
	}
	return nil
}

func (m *Manager) fetch(ctx context.Context, info ModelInfo, dst io.Writer, progress chan<- Progress) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка скачивания: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = info.Size
	}

	w := &progressWriter{dst: dst, id: info.ID, total: total, progress: progress}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return 0, err
	}
	return total, nil
}

// progressWriter считает записанные байты и неблокирующе шлёт прогресс.
type progressWriter struct {
	dst      io.Writer
	id       string
	total    int64
	written  int64
	progress chan<- Progress
}

func (w *progressWriter) Write(p []byte) (int, error) {
	n, err := w.dst.Write(p)
	w.written += int64(n)
	if w.progress != nil {
		select {
		case w.progress <- Progress{ModelID: w.id, Downloaded: w.written, Total: w.total}:
		default:
		}
	}
	return n, err
}

func unzip(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	root := filepath.Clean(destDir) + string(os.PathSeparator)
	for _, f := range r.File {
		fpath := filepath.Join(destDir, f.Name)
		if !strings.HasPrefix(fpath, root) {
			return fmt.Errorf("недопустимый путь в архиве: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}
		if err := extract(f, fpath); err != nil {
			return err
		}
	}
	return nil
}

func extract(f *zip.File, fpath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// Delete удаляет модель.
func (m *Manager) Delete(info ModelInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return os.RemoveAll(m.GetModelPath(info))
}
