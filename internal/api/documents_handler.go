package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/legalreview/internal/review"
)

type DocumentsHandler struct {
	service *review.Service
}

func NewDocumentsHandler(svc *review.Service) *DocumentsHandler {
	return &DocumentsHandler{service: svc}
}

// httpError maps domain errors onto HTTP status codes. NotFound becomes 404,
// conflicts and illegal transitions 409, malformed input 400.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, review.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, review.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case review.IsInvalidTransition(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case review.IsInvalidInput(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *DocumentsHandler) Ingest(c echo.Context) error {
	var doc review.LegalDocument
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	created, err := h.service.Ingest(c.Request().Context(), &doc)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *DocumentsHandler) List(c echo.Context) error {
	var criteria review.Criteria
	if err := c.Bind(&criteria); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	docs, err := h.service.Filter(c.Request().Context(), criteria)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *DocumentsHandler) Get(c echo.Context) error {
	doc, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// reviewActionBody carries the acting reviewer and an optional note recorded
// on the thread alongside the transition.
type reviewActionBody struct {
	Reviewer string `json:"reviewer"`
	Note     string `json:"note"`
}

func bindAction(c echo.Context) (reviewActionBody, error) {
	var body reviewActionBody
	if c.Request().ContentLength == 0 {
		return body, nil
	}
	if err := c.Bind(&body); err != nil {
		return body, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return body, nil
}

func (h *DocumentsHandler) Approve(c echo.Context) error {
	body, err := bindAction(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Approve(c.Request().Context(), c.Param("id"), body.Reviewer, body.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Reject(c echo.Context) error {
	body, err := bindAction(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Reject(c.Request().Context(), c.Param("id"), body.Reviewer, body.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) RequestRevision(c echo.Context) error {
	body, err := bindAction(c)
	if err != nil {
		return err
	}
	doc, err := h.service.RequestRevision(c.Request().Context(), c.Param("id"), body.Reviewer, body.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Resubmit(c echo.Context) error {
	doc, err := h.service.Resubmit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Assign(c echo.Context) error {
	var body struct {
		Reviewer string `json:"reviewer"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	doc, err := h.service.Assign(c.Request().Context(), c.Param("id"), body.Reviewer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) AddComment(c echo.Context) error {
	var body struct {
		Author  string             `json:"author"`
		Content string             `json:"content"`
		Type    review.CommentType `json:"type"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	doc, err := h.service.AddComment(c.Request().Context(), c.Param("id"), body.Author, body.Content, body.Type)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) SetPriority(c echo.Context) error {
	var body struct {
		Priority review.Priority `json:"priority"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	doc, err := h.service.SetPriority(c.Request().Context(), c.Param("id"), body.Priority)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Statistics(c echo.Context) error {
	stats, err := h.service.Statistics(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
