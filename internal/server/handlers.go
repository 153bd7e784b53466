package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bstardust/geophoto/internal/exif"
	"github.com/bstardust/geophoto/internal/geo"
	"github.com/bstardust/geophoto/internal/imagefile"
	"github.com/bstardust/geophoto/internal/logger"
	"github.com/bstardust/geophoto/internal/metadata"
	"github.com/bstardust/geophoto/pkg/common"
	"github.com/bstardust/geophoto/pkg/models"
)

// pageData is everything the upload page template can render.
type pageData struct {
	Error    string
	Success  bool
	Filename string

	View       *metadata.View
	Categories []metadata.Category

	HasGPS    bool
	Latitude  float64
	Longitude float64
	CoordText string
	MapLink   string

	// TempImage carries the uploaded bytes (base64) into the edit flow,
	// so the update call sends the full image instead of relying on any
	// state held between requests.
	TempImage string
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, http.StatusOK, &pageData{})
}

// upload accepts a multipart photo, extracts its metadata and renders the
// results page.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxSize+multipartOverhead)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxSize); err != nil {
		return common.NewValidationError("File too large. Maximum size is 16MB.")
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return common.NewValidationError("No file uploaded. Please select a photo.")
	}
	defer file.Close()

	if header.Filename == "" {
		return common.NewValidationError("No file selected. Please choose a photo.")
	}
	if !imagefile.IsAllowedFile(header.Filename) {
		return common.NewValidationError("Invalid file type. Please upload an image.")
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.Upload.MaxSize+1))
	if err != nil {
		return fmt.Errorf("cannot read uploaded file: %w", err)
	}
	if int64(len(data)) > s.cfg.Upload.MaxSize {
		return common.NewValidationError("File too large. Maximum size is 16MB.")
	}

	// Trust the bytes over the extension when they disagree.
	contentType := imagefile.DetectContentType(header.Filename)
	if sniffed := imagefile.SniffContentType(data); imagefile.IsAllowed(sniffed) {
		contentType = sniffed
	}

	asset := models.NewAsset(header.Filename, contentType, data)
	logger.Debug("upload received: %s (%s, %d bytes)", asset.FileName, asset.ContentType, asset.Size)

	view, err := metadata.Build(asset)
	if err != nil {
		return err
	}

	page := &pageData{
		Success:    true,
		Filename:   asset.FileName,
		View:       view,
		Categories: metadata.Categories,
		TempImage:  base64.StdEncoding.EncodeToString(asset.Data),
	}
	if view.GPS != nil {
		page.HasGPS = true
		page.Latitude = view.GPS.Latitude
		page.Longitude = view.GPS.Longitude
		page.CoordText = view.GPS.String()
		page.MapLink = view.GPS.MapLink()
	}
	return s.render(w, http.StatusOK, page)
}

// updateRequest is the JSON body of the coordinate-update endpoint. The
// pointer fields distinguish a missing coordinate from a legitimate zero.
type updateRequest struct {
	Image     string   `json:"image"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Filename  string   `json:"filename"`
}

// updateGPS rewrites the GPS tags of the supplied image and returns the
// result as a download.
func (s *Server) updateGPS(w http.ResponseWriter, r *http.Request) error {
	var req updateRequest
	// Allow for base64 expansion plus the JSON envelope.
	if err := parse(w, r, &req, s.cfg.Upload.MaxSize*2); err != nil {
		return common.NewValidationError("Cannot parse request body: %v", err)
	}

	if req.Image == "" {
		return common.NewValidationError("image field is required")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return common.NewValidationError("latitude and longitude are required")
	}
	if req.Filename == "" {
		req.Filename = "image.jpg"
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return common.NewValidationError("image field is not valid base64")
	}
	if int64(len(data)) > s.cfg.Upload.MaxSize {
		return common.NewValidationError("File too large. Maximum size is 16MB.")
	}

	coord := geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}

	sourceType := imagefile.DetectContentType(req.Filename)
	if sniffed := imagefile.SniffContentType(data); imagefile.IsAllowed(sniffed) {
		sourceType = sniffed
	}

	out, contentType, err := exif.SetLocation(data, sourceType, coord)
	if err != nil {
		return err
	}
	logger.Info("GPS tags updated for %s: %s", req.Filename, coord)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "gps_updated_"+req.Filename))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(out)
	return err
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	return respond(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": s.cfg.Environment,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}
