package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"feedpoll/internal/locale"
	"feedpoll/internal/service"
)

const (
	maxOPMLSize = 5 << 20
	// Room for multipart boundaries and part headers around the file.
	multipartOverhead = 64 << 10
)

var (
	errOPMLTooLarge    = errors.New("opml document too large")
	errOPMLMissingFile = errors.New("missing file")
	errOPMLUnreadable  = errors.New("invalid request")
)

type OPMLHandler struct {
	service    service.OPMLService
	translator *locale.Translator
}

func NewOPMLHandler(service service.OPMLService, translator *locale.Translator) *OPMLHandler {
	return &OPMLHandler{service: service, translator: translator}
}

func (h *OPMLHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/opml/import", h.Import)
	g.GET("/opml/export", h.Export)
}

// Import subscribes to every feed listed in an OPML document.
// @Summary Import OPML
// @Description Accepts a multipart "file" field or a raw OPML body of at most 5 MiB
// @Tags opml
// @Accept multipart/form-data
// @Accept xml
// @Produce json
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /opml/import [post]
func (h *OPMLHandler) Import(c echo.Context) error {
	document, err := readOPMLUpload(c)
	switch {
	case errors.Is(err, errOPMLTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
	case err != nil:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.Import(c.Request().Context(), bytes.NewReader(document))
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Export downloads the subscription list as OPML.
// @Summary Export OPML
// @Tags opml
// @Produce xml
// @Success 200 {string} string
// @Router /opml/export [get]
func (h *OPMLHandler) Export(c echo.Context) error {
	payload, err := h.service.Export(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.translator, err)
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="feedpoll.opml"`)
	return c.Blob(http.StatusOK, "application/xml", payload)
}

// readOPMLUpload returns the document from the multipart "file" field, or the
// raw body for any other content type.
func readOPMLUpload(c echo.Context) ([]byte, error) {
	req := c.Request()
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), "multipart/") {
		req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxOPMLSize)
		return readOPML(req.Body)
	}

	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxOPMLSize+multipartOverhead)
	file, err := c.FormFile("file")
	switch {
	case isTooLarge(err):
		return nil, errOPMLTooLarge
	case errors.Is(err, http.ErrMissingFile):
		return nil, errOPMLMissingFile
	case err != nil:
		return nil, errOPMLUnreadable
	}
	if file.Size > maxOPMLSize {
		return nil, errOPMLTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, errOPMLUnreadable
	}
	defer src.Close()
	return readOPML(io.LimitReader(src, maxOPMLSize+1))
}

func readOPML(r io.Reader) ([]byte, error) {
	document, err := io.ReadAll(r)
	switch {
	case isTooLarge(err):
		return nil, errOPMLTooLarge
	case err != nil:
		return nil, errOPMLUnreadable
	case len(document) > maxOPMLSize:
		return nil, errOPMLTooLarge
	}
	return document, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
