// Package handlers is the HTTP boundary: request parsing, status mapping,
// and the uniform error envelope.
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dineshd07/audio-spoof-api/internal/audio"
	"github.com/dineshd07/audio-spoof-api/internal/detect"
	"github.com/dineshd07/audio-spoof-api/internal/model"
)

// Handler serves the detection endpoints.
type Handler struct {
	detector     *detect.Detector
	detectorName string
	logger       *slog.Logger
}

// NewHandler wires a handler to a detector. detectorName is reported by the
// health endpoint ("onnx" or "feature-based").
func NewHandler(detector *detect.Detector, detectorName string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		detector:     detector,
		detectorName: detectorName,
		logger:       logger,
	}
}

// Health reports model-load state.
//
//	@Summary     Health check
//	@Description Reports whether the classifier is loaded and ready to score.
//	@Tags        health
//	@Produce     json
//	@Success     200 {object} handlers.HealthResponse
//	@Router      /health [get]
func (h *Handler) Health(c *gin.Context) {
	status := "healthy"
	if !h.detector.Ready() {
		status = "loading"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:           status,
		ModelLoaded:      h.detector.Ready(),
		Detector:         h.detectorName,
		SupportedFormats: audio.SupportedFormats,
	})
}

// Root describes the service.
//
//	@Summary  Service information
//	@Tags     health
//	@Produce  json
//	@Success  200 {object} map[string]any
//	@Router   / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":          "Audio Spoof Detection API",
		"supportedFormats": audio.SupportedFormats,
		"endpoints": gin.H{
			"/detect": "POST - Detect AI-generated vs human speech (multipart upload)",
			"/health": "GET - Health check",
			"/docs":   "GET - API documentation",
		},
	})
}

// Detect classifies an uploaded audio file as human or AI-generated speech.
//
//	@Summary     Detect spoofed speech
//	@Description Accepts a WAV upload and returns a HUMAN / AI_GENERATED verdict with a confidence score and explanation.
//	@Tags        detection
//	@Accept      multipart/form-data
//	@Produce     json
//	@Param       X-API-Key header   string true  "API key"
//	@Param       audio     formData file   true  "Audio file (WAV)"
//	@Param       language  formData string false "Language tag, echoed back unchanged"
//	@Success     200 {object} handlers.SuccessResponse
//	@Failure     400 {object} handlers.ErrorResponse
//	@Failure     401 {object} handlers.ErrorResponse
//	@Failure     500 {object} handlers.ErrorResponse
//	@Failure     503 {object} handlers.ErrorResponse
//	@Router      /detect [post]
func (h *Handler) Detect(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		h.fail(c, http.StatusBadRequest, "No audio file provided. Use 'audio' as the form field name")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("reading upload failed", "error", err, "file", header.Filename)
		h.fail(c, http.StatusBadRequest, "Failed to read audio file")
		return
	}

	language := c.PostForm("language")

	wave, err := audio.Decode(data)
	if err != nil {
		h.respondDecodeError(c, err, header.Filename)
		return
	}

	h.logger.Info("audio received",
		"file", header.Filename,
		"bytes", len(data),
		"duration", wave.Duration(),
		"sampleRate", wave.SampleRate,
		"language", language,
	)

	result, err := h.detector.Detect(wave, language)
	if err != nil {
		h.respondDetectError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status:          "success",
		Language:        result.Language,
		Classification:  string(result.Classification),
		ConfidenceScore: round2(result.ConfidenceScore),
		Explanation:     result.Explanation,
	})
}

func (h *Handler) respondDecodeError(c *gin.Context, err error, filename string) {
	switch {
	case errors.Is(err, audio.ErrEmptyAudio):
		h.fail(c, http.StatusBadRequest, "Empty audio upload")
	case errors.Is(err, audio.ErrUnsupportedFormat):
		h.fail(c, http.StatusBadRequest, "Unsupported audio format. Supported: wav")
	default:
		h.logger.Error("audio decode failed", "error", err, "file", filename)
		h.fail(c, http.StatusInternalServerError, "Error processing audio")
	}
}

func (h *Handler) respondDetectError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrUnavailable) {
		h.fail(c, http.StatusServiceUnavailable, "Model not loaded. Try again later")
		return
	}
	h.logger.Error("detection failed", "error", err)
	h.fail(c, http.StatusInternalServerError, "Error processing audio")
}

func (h *Handler) fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Status: "error", Message: message})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
