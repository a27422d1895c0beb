package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

type GenreService struct{ repo GenreStore }

func NewGenreService(repo GenreStore) *GenreService { return &GenreService{repo: repo} }

func (s *GenreService) FindByID(ctx context.Context, id uint64) (*model.Genre, error) {
	return s.repo.FindByID(ctx, id)
}

type HallService struct{ repo HallStore }

func NewHallService(repo HallStore) *HallService { return &HallService{repo: repo} }

func (s *HallService) FindByID(ctx context.Context, id uint64) (*model.Hall, error) {
	return s.repo.FindByID(ctx, id)
}

// FileService resolves poster records and reads their bytes from disk.
// A relative path is taken relative to baseDir.
type FileService struct {
	repo    FileStore
	baseDir string
}

func NewFileService(repo FileStore, baseDir string) *FileService {
	return &FileService{repo: repo, baseDir: baseDir}
}

func (s *FileService) FindByID(ctx context.Context, id uint64) (*model.File, error) {
	return s.repo.FindByID(ctx, id)
}

// Content returns the file's bytes.  An unknown id and an unreadable file
// both yield ErrNotFound.
func (s *FileService) Content(ctx context.Context, id uint64) ([]byte, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.resolve(f.Path))
	if err != nil {
		return nil, fmt.Errorf("read file %d: %w", id, ErrNotFound)
	}
	return b, nil
}

func (s *FileService) resolve(p string) string {
	if filepath.IsAbs(p) || s.baseDir == "" {
		return p
	}
	return filepath.Join(s.baseDir, p)
}
