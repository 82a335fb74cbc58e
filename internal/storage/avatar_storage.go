package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// AvatarStorage отвечает за файловое хранилище аватаров профилей.
// Принимаются только настоящие изображения: тип определяется по содержимому,
// а не по расширению имени файла.
type AvatarStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewAvatarStorage создаёт файловое хранилище.
func NewAvatarStorage(rootPath string, maxUploadMB int64) (*AvatarStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &AvatarStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save проверяет и сохраняет аватар, возвращая относительный путь.
func (s *AvatarStorage) Save(ctx context.Context, userID uuid.UUID, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	limited := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	data, err := io.ReadAll(&limited)
	if err != nil {
		return "", fmt.Errorf("storage: ошибка чтения файла: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return "", fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось определить тип файла: %w", err)
	}
	if !filetype.IsImage(data) {
		return "", fmt.Errorf("storage: файл не является изображением")
	}

	fileName := fmt.Sprintf("%s_%d.%s", userID.String(), time.Now().UnixNano(), kind.Extension)
	targetPath := filepath.Join(s.rootPath, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return fileName, nil
}

// Delete удаляет аватар из хранилища.
func (s *AvatarStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, filepath.Base(relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
