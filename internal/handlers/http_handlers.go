package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"wordraffle/internal/models"
	"wordraffle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// HTTPHandler holds the dependencies for the HTTP handlers, like the raffle service.
type HTTPHandler struct {
	service   *services.RaffleService
	templates *template.Template
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(service *services.RaffleService, templates *template.Template) *HTTPHandler {
	return &HTTPHandler{
		service:   service,
		templates: templates,
	}
}

// renderPage is a helper to perform a two-step template rendering.
// It first executes the content template into a buffer, then executes the main
// layout template, passing the rendered content as a variable.
func (h *HTTPHandler) renderPage(c *gin.Context, status int, pageData gin.H, contentTmpl string) {
	// Step 1: Render the specific page content into a buffer.
	buf := new(bytes.Buffer)
	err := h.templates.ExecuteTemplate(buf, contentTmpl, pageData)
	if err != nil {
		logger.Errorf("Error executing content template %s: %v", contentTmpl, err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}

	// Step 2: Add the rendered content to the main data map and render the layout.
	pageData["PageContent"] = template.HTML(buf.String())

	buf.Reset()
	if err := h.templates.ExecuteTemplate(buf, "layout.html", pageData); err != nil {
		logger.Errorf("Error executing layout template: %v", err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// renderPartial renders a single template, as returned to htmx requests.
func (h *HTTPHandler) renderPartial(c *gin.Context, status int, name string, data any) {
	buf := new(bytes.Buffer)
	if err := h.templates.ExecuteTemplate(buf, name, data); err != nil {
		logger.Errorf("Error executing template %s: %v", name, err)
		c.String(http.StatusInternalServerError, "Template error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func panelData(session services.Session) gin.H {
	return gin.H{
		"title":  "抽選",
		"Form":   session.Form,
		"Result": session.Result,
		"Min":    1,
		"Max":    models.MaxWordIndex,
	}
}

// RegisterPublicRoutes registers the routes that need no form session.
// apiMiddleware is applied to the /api group only.
func (h *HTTPHandler) RegisterPublicRoutes(router *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	router.GET("/health", h.Health)

	api := router.Group("/api", apiMiddleware...)
	api.POST("/raffle", h.APIRaffle)
	api.OPTIONS("/raffle", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

// RegisterSessionRoutes registers the form routes. They expect SessionMiddleware.
func (h *HTTPHandler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.ShowIndex)
	rg.POST("/raffle", h.PerformRaffle)
	rg.POST("/validate", h.ValidateField)
	rg.POST("/reset", h.ResetSession)
}

// ShowIndex handles the request for the raffle page.
func (h *HTTPHandler) ShowIndex(c *gin.Context) {
	session := h.service.Snapshot(SessionID(c))
	h.renderPage(c, http.StatusOK, panelData(session), "index.html")
}

// PerformRaffle handles the form submission. htmx requests get the panel
// partial back; plain form posts get the whole page.
func (h *HTTPHandler) PerformRaffle(c *gin.Context) {
	raw := c.PostForm("numberOfWords")

	status := http.StatusOK
	session, err := h.service.Submit(SessionID(c), raw)
	if err != nil {
		if !services.IsValidationError(err) {
			logger.Errorf("Raffle failed: %v", err)
			c.String(http.StatusInternalServerError, "Raffle failed")
			return
		}
		// htmx does not swap error responses, so it gets 200 with the message.
		if !isHTMX(c) {
			status = http.StatusUnprocessableEntity
		}
	}

	if isHTMX(c) {
		h.renderPartial(c, status, "raffle_panel.html", panelData(session))
		return
	}
	h.renderPage(c, status, panelData(session), "index.html")
}

// ValidateField handles the blur validation of the word count field.
func (h *HTTPHandler) ValidateField(c *gin.Context) {
	form := h.service.Validate(SessionID(c), c.PostForm("numberOfWords"))
	h.renderPartial(c, http.StatusOK, "field_error.html", form)
}

// ResetSession drops the form state and result of the current session.
func (h *HTTPHandler) ResetSession(c *gin.Context) {
	h.service.ClearSession(SessionID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// raffleRequest is the JSON body of POST /api/raffle. The word count may be
// sent as a number or as text.
type raffleRequest struct {
	NumberOfWords any `json:"numberOfWords"`
}

func rawNumber(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(n)
	}
}

// APIRaffle runs a raffle without touching any form session.
func (h *HTTPHandler) APIRaffle(c *gin.Context) {
	var req raffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "code": "bad_request"})
		return
	}

	n, err := services.ValidateNumberOfWords(rawNumber(req.NumberOfWords))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": services.ErrorCode(err)})
		return
	}

	result, err := h.service.Draw(n)
	if err != nil {
		logger.Errorf("API raffle failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "raffle failed", "code": "internal"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health reports liveness.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
		"sessions":  h.service.SessionCount(),
	})
}
