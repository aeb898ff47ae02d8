// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cloudchore/cloudchore/internal/log"
	"github.com/cloudchore/cloudchore/internal/resize"
	"github.com/cloudchore/cloudchore/internal/storage"
)

const defaultFilename = "resized-image.jpg"

// resizeRequest is the JSON form of a resize call, referencing an already
// uploaded object instead of carrying the image inline.
type resizeRequest struct {
	Key      string `json:"key"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Filename string `json:"filename"`
}

// GetHealth is the liveness route.
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "image-resizer",
	})
}

// PostResize accepts an image either inline (base64 or data URL body) or by
// object key (JSON body), resizes it, and writes the result to the resized
// bucket under a fresh UUID name.
func (s *Server) PostResize(c *gin.Context) {
	opt := s.Defaults
	filename := c.DefaultQuery("filename", defaultFilename)

	var err error
	if opt.Width, err = dimensionParam(c, "width"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if opt.Height, err = dimensionParam(c, "height"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var data []byte
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req resizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed request body"})
			return
		}
		if req.Key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "key is required"})
			return
		}
		if req.Width > 0 {
			opt.Width = req.Width
		}
		if req.Height > 0 {
			opt.Height = req.Height
		}
		if req.Filename != "" {
			filename = req.Filename
		}

		data, err = s.Uploads.Get(c.Request.Context(), req.Key)
		if err != nil {
			log.Errorf("fetch %s: %v", req.Key, err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "source object unavailable"})
			return
		}
	} else {
		data, err = inlineImage(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
	}

	result, err := resize.Resize(data, opt)
	if err != nil {
		if errors.Is(err, resize.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Errorf("resize: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	resizedName := fmt.Sprintf("%s.%s", uuid.NewString(), extension(filename))
	if err := s.Resized.Put(c.Request.Context(), resizedName, result.Data, result.ContentType); err != nil {
		log.Errorf("put %s: %v", resizedName, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": storage.ErrStorage.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Image resized successfully",
		"resized_url":  s.Resized.URL(resizedName),
		"filename":     resizedName,
		"content_type": result.ContentType,
	})
}

// dimensionParam reads an optional positive integer query parameter. Zero
// means unset.
func dimensionParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

// inlineImage decodes a base64 request body, tolerating a data URL prefix.
func inlineImage(body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, errors.New("No image data provided in request body")
	}

	if strings.HasPrefix(text, "data:") {
		if _, rest, found := strings.Cut(text, ","); found {
			text = rest
		}
	}

	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode base64 body: %w", err)
	}
	return data, nil
}

// extension mirrors the upload naming convention: the extension of the
// requested filename wins, defaulting to jpg.
func extension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return filename[i+1:]
	}
	return "jpg"
}
