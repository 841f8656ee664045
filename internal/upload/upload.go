package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store хранит загруженные файлы на диске, раскладывая их по папкам сущностей
type Store struct {
	root string
}

func NewStore(root string) Store {
	return Store{root: root}
}

// Save записывает содержимое под случайным именем и возвращает это имя
func (s Store) Save(folder, ext string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("создание каталога %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s.%s", uuid.New(), ext)

	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("создание файла: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("запись файла: %w", err)
	}
	return name, nil
}

// Path возвращает путь к сохранённому файлу. Имена с разделителями пути
// отклоняются, чтобы нельзя было выйти за пределы каталога хранилища.
func (s Store) Path(folder, name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", false
	}

	path := filepath.Join(s.root, folder, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
