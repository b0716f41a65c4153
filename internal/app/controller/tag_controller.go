package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlarina/foodgram-backend/internal/app/service"
	apperrors "github.com/mlarina/foodgram-backend/internal/errors"
	"github.com/mlarina/foodgram-backend/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
}

// ListTags returns all tags
// GET /api/v1/tags
func (ctrl *TagController) ListTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.ListTags()
	if err != nil {
		log.Error("Failed to list tags", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTag returns one tag
// GET /api/v1/tags/:id
func (ctrl *TagController) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.GetTag(id)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, tag)
}

// CreateTag adds a tag, admin only
// POST /api/v1/tags
func (ctrl *TagController) CreateTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid tag data")
		return
	}

	tag, err := ctrl.tagService.CreateTag(req.Name, req.Color, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTagColor):
			apperrors.BadRequest(c, apperrors.TagInvalidColor, "Color must be a hex value like #49B64E")
		case errors.Is(err, service.ErrTagExists):
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "A tag with this name or slug already exists")
		default:
			log.Error("Failed to create tag", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, tag)
}
