package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/life-record-api/internal/errors"
	"github.com/yukikurage/life-record-api/internal/services"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload stores the multipart field "file"
func (h *ImageHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Missing file")
		return
	}

	resp, err := h.imageService.Save(userID, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Serve returns a stored image. It is reachable without a token so that <img> tags
// can load it; anyone who knows the user id and random file name can fetch the file.
func (h *ImageHandler) Serve(c *gin.Context) {
	path, err := h.imageService.Path(c.Param("user_id"), c.Param("filename"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("X-Content-Type-Options", "nosniff")
	c.File(path)
}
