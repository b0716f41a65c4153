package service

import (
	"errors"
	"strings"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	apperrors "github.com/mlarina/foodgram-backend/internal/errors"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidTagColor = errors.New("tag color must be a hex value like #49B64E")
	ErrTagExists       = errors.New("tag name or slug already exists")
)

type TagService interface {
	ListTags() ([]model.Tag, error)
	GetTag(id uint) (*model.Tag, error)
	CreateTag(name, color, slug string) (*model.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags() ([]model.Tag, error) {
	return s.tagRepo.FindAll()
}

func (s *tagService) GetTag(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) CreateTag(name, color, slug string) (*model.Tag, error) {
	color = strings.ToUpper(strings.TrimSpace(color))
	if !model.ValidHexColor(color) {
		return nil, ErrInvalidTagColor
	}

	tag := &model.Tag{
		Name:  strings.TrimSpace(name),
		Color: color,
		Slug:  strings.TrimSpace(slug),
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	logger.Info("Tag created", map[string]interface{}{
		"tag_id": tag.ID,
		"slug":   tag.Slug,
	})
	return tag, nil
}
