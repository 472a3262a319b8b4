package api

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"petcare/model"
	"petcare/types"
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// ImageHandler serves the image-analysis endpoint: a thin pass-through to
// the vision model.
type ImageHandler struct {
	vision model.VisionInterface
}

func NewImageHandler(vision model.VisionInterface) *ImageHandler {
	return &ImageHandler{vision: vision}
}

func (h *ImageHandler) HandleAnalyzeImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		return ErrInvalidFileType()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	analysis, err := h.vision.Analyze(c.UserContext(), data, mimeType)
	if err != nil {
		return err
	}

	return c.JSON(types.StatusResponse{
		Status:   "success",
		Analysis: analysis,
	})
}
