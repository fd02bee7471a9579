package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/storage"
)

// Назначение загруженного изображения.
const (
	MediaPurposeNone   = ""
	MediaPurposeAvatar = "avatar"
	MediaPurposeLogo   = "logo"
)

// MediaRepository описывает учёт загруженных файлов.
type MediaRepository interface {
	Create(ctx context.Context, media *models.MediaFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MediaFile, error)
	Delete(ctx context.Context, mediaID uuid.UUID) error
}

// FileStorage сохраняет содержимое файлов.
type FileStorage interface {
	Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
	URL(relativePath string) string
}

// ProfileImages привязывает загруженные изображения к профилям.
type ProfileImages interface {
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, url string) error
	UpdateBrandLogo(ctx context.Context, userID uuid.UUID, url string) error
}

// UploadInput загружаемый файл, тип которого уже проверен.
type UploadInput struct {
	FileName    string
	ContentType string
	Purpose     string
	Content     io.Reader
}

// MediaService управляет аватарами и логотипами.
type MediaService struct {
	repo     MediaRepository
	storage  FileStorage
	profiles ProfileImages
}

// NewMediaService создаёт сервис медиа-файлов.
func NewMediaService(repo MediaRepository, storage FileStorage, profiles ProfileImages) *MediaService {
	return &MediaService{repo: repo, storage: storage, profiles: profiles}
}

// Upload сохраняет изображение и при необходимости ставит его аватаром или логотипом.
func (s *MediaService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*models.MediaFile, error) {
	switch in.Purpose {
	case MediaPurposeNone, MediaPurposeAvatar, MediaPurposeLogo:
	default:
		return nil, apperror.Validation("purpose должен быть avatar или logo")
	}

	relativePath, size, err := s.storage.Save(ctx, userID, in.FileName, in.Content)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, apperror.Validation("размер файла превышает допустимый")
		}
		return nil, apperror.Internal(err)
	}

	media := &models.MediaFile{
		UserID:   &userID,
		FilePath: relativePath,
		FileType: in.ContentType,
		FileSize: size,
		IsPublic: true,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		_ = s.storage.Delete(ctx, relativePath)
		return nil, apperror.Internal(err)
	}
	media.URL = s.storage.URL(media.FilePath)

	switch in.Purpose {
	case MediaPurposeAvatar:
		err = s.profiles.UpdateProfileImage(ctx, userID, media.URL)
	case MediaPurposeLogo:
		err = s.profiles.UpdateBrandLogo(ctx, userID, media.URL)
	}
	if err != nil {
		return nil, err
	}

	return media, nil
}

// ListMedia возвращает файлы пользователя.
func (s *MediaService) ListMedia(ctx context.Context, userID uuid.UUID) ([]models.MediaFile, error) {
	files, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range files {
		files[i].URL = s.storage.URL(files[i].FilePath)
	}
	return files, nil
}

// DeleteMedia удаляет файл, загруженный пользователем.
func (s *MediaService) DeleteMedia(ctx context.Context, userID, mediaID uuid.UUID) error {
	media, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return mapRepoError(err, repository.ErrMediaNotFound, apperror.New(apperror.ErrCodeNotFound, "файл не найден"))
	}
	if media.UserID == nil || *media.UserID != userID {
		return apperror.New(apperror.ErrCodeForbidden, "у вас нет прав на удаление этого файла")
	}

	if err := s.repo.Delete(ctx, mediaID); err != nil {
		return mapRepoError(err, repository.ErrMediaNotFound, apperror.New(apperror.ErrCodeNotFound, "файл не найден"))
	}
	if err := s.storage.Delete(ctx, media.FilePath); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
