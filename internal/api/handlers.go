package api

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"cardsense/cardsense-india/internal/insights"
	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/parsererror"
	"cardsense/cardsense-india/internal/report"
	"cardsense/cardsense-india/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// UploadResponse is the JSON body of a successful upload.
type UploadResponse struct {
	Success   bool           `json:"success"`
	Inserted  int            `json:"inserted"`
	Summary   report.Summary `json:"summary"`
	RowErrors []string       `json:"rowErrors,omitempty"`
}

// AnalyzeResponse is the JSON body of a successful analysis.
type AnalyzeResponse struct {
	Success   bool             `json:"success"`
	Summary   report.Summary   `json:"summary"`
	Insights  insights.Insight `json:"insights"`
	RowErrors []string         `json:"rowErrors,omitempty"`
}

type errorResponse struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	RowErrors []string `json:"rowErrors,omitempty"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"aiEnabled":  s.analyzer.Enabled(),
		"categories": models.AllCategories(),
	})
}

func (s *Server) handleCategorize(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "query parameter 'q' is required"})
	}
	return c.JSON(fiber.Map{"description": q, "category": s.categorizer.Categorize(q)})
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	userID := c.Get(UserHeader)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "unauthorized"})
	}

	u, err := readUpload(c, userID)
	if err != nil {
		return s.writeUploadError(c, err)
	}

	result, err := s.uploads.Process(c.UserContext(), u)
	if err != nil {
		return s.writeUploadError(c, err)
	}

	s.summaries.Set(userID, result.Summary, cache.DefaultExpiration)

	return c.JSON(UploadResponse{
		Success:   true,
		Inserted:  result.Inserted,
		Summary:   result.Summary,
		RowErrors: result.RowErrors,
	})
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	userID := c.Get(UserHeader)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "unauthorized"})
	}
	if !s.analyzer.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: insights.ErrAIDisabled.Error()})
	}

	u, err := readUpload(c, userID)
	if err != nil {
		return s.writeUploadError(c, err)
	}
	ex, err := s.uploads.Extract(u)
	if err != nil {
		return s.writeUploadError(c, err)
	}

	summary := report.Summarize(ex.Transactions)
	insight, err := s.analyzer.Analyze(c.UserContext(), ex.Text, summary)
	switch {
	case errors.Is(err, insights.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(errorResponse{Error: err.Error()})
	case errors.Is(err, insights.ErrAIDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: err.Error()})
	case errors.Is(err, insights.ErrEmptyText):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "AI analysis failed"})
	}

	return c.JSON(AnalyzeResponse{
		Success:   true,
		Summary:   summary,
		Insights:  *insight,
		RowErrors: ex.RowErrors,
	})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	userID := c.Get(UserHeader)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "unauthorized"})
	}

	cached, found := s.summaries.Get(userID)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "no recent upload summary"})
	}
	return c.JSON(fiber.Map{"success": true, "summary": cached.(report.Summary)})
}

// readUpload pulls the multipart "file" field into memory.
func readUpload(c *fiber.Ctx, userID string) (upload.Upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return upload.Upload{}, parsererror.ErrNoFile
	}
	data, err := readFileHeader(fh)
	if err != nil {
		return upload.Upload{}, err
	}
	return upload.Upload{
		UserID:      userID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// writeUploadError maps pipeline errors to statuses: client mistakes are
// 400, persistence and unknown failures 500.
func (s *Server) writeUploadError(c *fiber.Ctx, err error) error {
	var (
		empty       *parsererror.EmptyExtractionError
		invalidFile *parsererror.InvalidFormatError
	)
	switch {
	case errors.As(err, &empty):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: parsererror.ErrNoTransactions.Error(), RowErrors: empty.RowErrors})
	case errors.Is(err, parsererror.ErrNoFile):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: parsererror.ErrNoFile.Error()})
	case errors.Is(err, parsererror.ErrUnsupportedFile):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: parsererror.ErrUnsupportedFile.Error()})
	case errors.As(err, &invalidFile):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "could not read the PDF statement"})
	case errors.Is(err, upload.ErrMissingUser):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: "unauthorized"})
	case errors.Is(err, parsererror.ErrPersistence):
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: parsererror.ErrPersistence.Error()})
	default:
		s.logger.WithError(err).Error("Upload failed")
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "internal server error"})
	}
}
