package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/takvimi-shqip/takvimi-api/config"
	"github.com/takvimi-shqip/takvimi-api/dto"
	"github.com/takvimi-shqip/takvimi-api/service"
)

var errPDFNotFound = errors.New("pdf file not found")

const cachingInfo = "By default, caching is enabled for month data and disabled for full year data. " +
	"To change this behavior, add ?use_cache=true or ?use_cache=false to your request."

type TakvimiHandler struct {
	cfg       *config.Config
	extractor *service.Extractor
	store     *service.DataManager
}

func NewTakvimiHandler(cfg *config.Config, extractor *service.Extractor, store *service.DataManager) *TakvimiHandler {
	return &TakvimiHandler{
		cfg:       cfg,
		extractor: extractor,
		store:     store,
	}
}

// Home handles GET /
func (h *TakvimiHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Takvimi Shqip API",
		"description": "API for the Albanian Islamic Calendar (Takvimi)",
		"endpoints": []string{
			"/api/takvimi - List available calendar years",
			"/api/takvimi/<year>.json - Get calendar data for a specific year",
			"/api/takvimi/<year>/<month>.json - Get calendar data for a specific month",
			"/api/takvimi/<year>/page/<page_num>.csv - Extract a specific page as CSV",
		},
		"caching_behavior": cachingInfo,
	})
}

// ListCalendars handles GET /api/takvimi
func (h *TakvimiHandler) ListCalendars(c *gin.Context) {
	entries, err := os.ReadDir(h.cfg.PDFDir)
	if err != nil {
		h.sendError(c, http.StatusNotFound, "takvimi-pdf folder not found", err)
		return
	}

	var files, years []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pdf") {
			continue
		}
		files = append(files, e.Name())
		years = append(years, strings.TrimSuffix(strings.TrimPrefix(e.Name(), "takvimi"), ".pdf"))
	}

	processed := h.store.ProcessedYears()
	months := map[string][]string{}
	for _, year := range processed {
		if m := h.store.ProcessedMonths(year); len(m) > 0 {
			months[year] = m
		}
	}

	c.JSON(http.StatusOK, dto.CalendarIndexResponse{
		AvailableYears:  years,
		ProcessedYears:  processed,
		ProcessedMonths: months,
		AvailableFiles:  files,
		CachingInfo:     cachingInfo,
	})
}

// GetYear handles GET /api/takvimi/:year.json
func (h *TakvimiHandler) GetYear(c *gin.Context) {
	year, ok := strings.CutSuffix(c.Param("year"), ".json")
	if !ok {
		h.sendError(c, http.StatusNotFound, "not found", nil)
		return
	}

	// Full-year cache is opt-in.
	if c.Query("use_cache") == "true" {
		if resp, ok := h.store.LoadYear(year); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	data, err := h.extractYear(year)
	if err != nil {
		h.sendExtractionError(c, year, err)
		return
	}

	if err := h.store.SaveYear(year, data); err != nil {
		log.Error().Str("year", year).Err(err).Msg("[handler] could not save extraction result")
	}

	c.JSON(http.StatusOK, dto.YearResponse{Year: year, Data: data})
}

// GetMonth handles GET /api/takvimi/:year/:month.json
func (h *TakvimiHandler) GetMonth(c *gin.Context) {
	year := c.Param("year")
	month, ok := strings.CutSuffix(c.Param("month"), ".json")
	if !ok {
		h.sendError(c, http.StatusNotFound, "not found", nil)
		return
	}
	n, err := strconv.Atoi(month)
	if err != nil || n < 1 || n > 12 {
		h.sendError(c, http.StatusBadRequest, "month must be a number between 01 and 12", nil)
		return
	}
	month = fmt.Sprintf("%02d", n)

	// Month cache is on unless disabled.
	if c.DefaultQuery("use_cache", "true") == "true" {
		if resp, ok := h.store.LoadMonth(year, month); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
		if resp, ok := h.store.LoadYear(year); ok {
			if bucket, ok := resp.Data[month]; ok {
				c.JSON(http.StatusOK, dto.MonthResponse{Year: year, Month: month, Data: bucket})
				return
			}
		}
	}

	data, err := h.extractYear(year)
	if err != nil {
		h.sendExtractionError(c, year, err)
		return
	}

	if err := h.store.SaveYear(year, data); err != nil {
		log.Error().Str("year", year).Err(err).Msg("[handler] could not save extraction result")
	}

	c.JSON(http.StatusOK, dto.MonthResponse{Year: year, Month: month, Data: data[month]})
}

// GetPageCSV handles GET /api/takvimi/:year/page/:page.csv — a diagnostic
// export of one page's first detected table.
func (h *TakvimiHandler) GetPageCSV(c *gin.Context) {
	if c.Param("month") != "page" {
		h.sendError(c, http.StatusNotFound, "not found", nil)
		return
	}
	year := c.Param("year")
	pageStr, ok := strings.CutSuffix(c.Param("page"), ".csv")
	if !ok {
		h.sendError(c, http.StatusNotFound, "not found", nil)
		return
	}
	pageNum, err := strconv.Atoi(pageStr)
	if err != nil || pageNum < 1 {
		h.sendError(c, http.StatusBadRequest, "page must be a positive number", err)
		return
	}

	pdfPath := h.pdfPath(year)
	if _, err := os.Stat(pdfPath); err != nil {
		h.sendError(c, http.StatusNotFound, fmt.Sprintf("PDF file not found for the year %s", year), nil)
		return
	}
	doc, err := service.OpenDocument(pdfPath)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "could not open PDF", err)
		return
	}
	defer doc.Close()

	table, err := service.ExtractPageTable(doc, pageNum-1)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No data could be extracted from the page",
			"message": err.Error(),
		})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range table {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		if err := w.Write(cells); err != nil {
			h.sendError(c, http.StatusInternalServerError, "could not encode CSV", err)
			return
		}
	}
	w.Flush()

	c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=takvimi%s_page%d.csv", year, pageNum))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// extractYear runs a full extraction for one calendar year PDF.
func (h *TakvimiHandler) extractYear(year string) (dto.Year, error) {
	yearNum, err := strconv.Atoi(year)
	if err != nil || yearNum < 1000 || yearNum > 9999 {
		return nil, fmt.Errorf("invalid year %q", year)
	}

	pdfPath := h.pdfPath(year)
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("%w: %s", errPDFNotFound, pdfPath)
	}

	doc, err := service.OpenDocument(pdfPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return h.extractor.Extract(doc, yearNum, service.KnownHolidays(yearNum), service.TimeCorrections(yearNum))
}

func (h *TakvimiHandler) pdfPath(year string) string {
	return filepath.Join(h.cfg.PDFDir, "takvimi"+year+".pdf")
}

func (h *TakvimiHandler) sendExtractionError(c *gin.Context, year string, err error) {
	switch {
	case errors.Is(err, errPDFNotFound):
		h.sendError(c, http.StatusNotFound, fmt.Sprintf("PDF file not found for the year %s", year), nil)
	case errors.Is(err, service.ErrDocumentUnreadable):
		h.sendError(c, http.StatusInternalServerError, fmt.Sprintf("error processing the PDF for year %s", year), err)
	default:
		h.sendError(c, http.StatusInternalServerError, fmt.Sprintf("error processing request for year %s", year), err)
	}
}

// sendError sends a structured error response
func (h *TakvimiHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Error().Err(err).Msg("[handler] " + message)
	}
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
