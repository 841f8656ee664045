package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"boardTracker/internal/upload"
)

var (
	validUploadTypes = []string{"users", "tasks", "boards"}
	validExtensions  = []string{"png", "jpg", "jpeg", "gif"}
)

type UploadService struct {
	store upload.Store
}

func NewUploadService(store upload.Store) UploadService {
	return UploadService{store: store}
}

// SaveFile проверяет тип сущности и расширение, после чего сохраняет файл.
// Расширение берётся из mime-типа, а не из имени файла клиента.
func (s *UploadService) SaveFile(ctx context.Context, entityType, mimeType string, r io.Reader) (string, error) {
	if err := checkUploadType(entityType); err != nil {
		return "", err
	}

	parts := strings.Split(mimeType, "/")
	ext := strings.ToLower(parts[len(parts)-1])
	if !slices.Contains(validExtensions, ext) {
		return "", NewValidationError("file",
			fmt.Sprintf("недопустимое расширение %s, разрешены: %s", ext, strings.Join(validExtensions, ", ")))
	}

	name, err := s.store.Save(entityType, ext, r)
	if err != nil {
		return "", NewInternal(fmt.Errorf("сохранение файла: %w", err))
	}
	return name, nil
}

// FilePath отдаёт путь до сохранённого изображения
func (s *UploadService) FilePath(ctx context.Context, entityType, name string) (string, error) {
	if err := checkUploadType(entityType); err != nil {
		return "", err
	}

	path, ok := s.store.Path(entityType, name)
	if !ok {
		return "", NewNotFound("изображение", name)
	}
	return path, nil
}

func checkUploadType(entityType string) error {
	if !slices.Contains(validUploadTypes, entityType) {
		return NewValidationError("type",
			fmt.Sprintf("недопустимый тип %s, разрешены: %s", entityType, strings.Join(validUploadTypes, ", ")))
	}
	return nil
}
