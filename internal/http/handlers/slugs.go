package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/n00baim/slug-generator-app/internal/domain"
	"github.com/n00baim/slug-generator-app/internal/slug"
)

const (
	uploadField = "image"
	// multipart framing allowance on top of the file size limit
	multipartOverhead = 1 << 20
	// The label stays image/jpeg whatever format the backend returned;
	// existing clients depend on it.
	slugImageMediaType = "image/jpeg"
)

type slugResponse struct {
	Success      bool   `json:"success"`
	SlugImageURL string `json:"slugImageUrl"`
	Description  string `json:"description"`
}

// GenerateSlug accepts a multipart upload in the "image" field, derives the
// slug twin of the picture and returns the generated image as a data URI.
func (a *App) GenerateSlug(w http.ResponseWriter, r *http.Request) {
	logger := a.requestLogger(r)

	data, err := a.readUpload(w, r)
	if err != nil {
		logger.Warn().Err(err).Msg("slug: rejected upload")
		switch {
		case errors.Is(err, domain.ErrNoImage):
			a.observeUpload("missing", 0)
			a.error(w, http.StatusBadRequest, "No image file provided", "")
		case errors.Is(err, domain.ErrUnsupportedMedia):
			a.observeUpload("rejected", 0)
			a.error(w, http.StatusBadRequest, "Only image files are allowed", "")
		case errors.Is(err, domain.ErrUploadTooLarge):
			a.observeUpload("too_large", 0)
			a.error(w, http.StatusRequestEntityTooLarge, "Image exceeds upload limit",
				fmt.Sprintf("maximum size is %d bytes", a.maxUploadBytes))
		default:
			a.observeUpload("invalid", 0)
			a.error(w, http.StatusBadRequest, "Invalid upload", err.Error())
		}
		return
	}
	a.observeUpload("accepted", len(data))

	result := slug.Derive(data)
	logger.Info().
		Int("bytes", len(data)).
		Str("characteristics", result.Characteristics).
		Msg("slug: derived characteristics")
	logger.Debug().Str("prompt", result.Prompt).Msg("slug: composed prompt")

	if a.generator == nil {
		a.error(w, http.StatusInternalServerError, "Failed to generate slug image", domain.ErrNoBackendsConfigured.Error())
		return
	}
	img, err := a.generator.Generate(r.Context(), result.Prompt)
	if err != nil {
		logger.Error().Err(err).Msg("slug: image generation failed")
		a.error(w, http.StatusInternalServerError, "Failed to generate slug image", err.Error())
		return
	}

	a.json(w, http.StatusOK, slugResponse{
		Success:      true,
		SlugImageURL: "data:" + slugImageMediaType + ";base64," + base64.StdEncoding.EncodeToString(img),
		Description:  result.Description,
	})
}

func (a *App) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, domain.ErrUploadTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			return nil, domain.ErrNoImage
		default:
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, domain.ErrNoImage
		}
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	if header.Size > a.maxUploadBytes {
		return nil, domain.ErrUploadTooLarge
	}
	mediaType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, domain.ErrUnsupportedMedia
	}

	data, err := io.ReadAll(io.LimitReader(file, a.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > a.maxUploadBytes {
		return nil, domain.ErrUploadTooLarge
	}
	return data, nil
}

func (a *App) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return a.logger
}
