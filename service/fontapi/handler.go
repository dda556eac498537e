package fontapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/config"
)

// Handler answers listing requests from a catalog lister.
type Handler struct {
	Lister   catalog.Lister
	PageSize int // used if a request has no limit
}

// NewHandler creates a listing handler.
func NewHandler(lister catalog.Lister, pageSize int) *Handler {
	if pageSize < 1 {
		pageSize = config.DefaultPageSize
	}
	return &Handler{Lister: lister, PageSize: pageSize}
}

// RegisterRoutes adds the listing routes to rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/fonts", h.list) // GET /api/fonts
}

func (h *Handler) list(c *gin.Context) {
	page, ok1 := parseInt(c.Query("page"), 1)
	limit, ok2 := parseInt(c.Query("limit"), h.PageSize)
	if !ok1 || !ok2 || page < 1 || limit < 1 {
		respondError(c, catalog.ErrInvalidPaging)
		return
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}
	filters := catalog.Filters{
		Category: catalog.Category(strings.ToLower(c.Query("category"))),
		Query:    c.Query("q"),
		Sort:     catalog.ParseSortOrder(c.Query("sort")),
	}
	if filters.Category != "" && filters.Category != catalog.CategoryAll && !filters.Category.Valid() {
		respondError(c, core.Error(core.EINVALID, "unknown font category %q", filters.Category))
		return
	}
	cp, err := h.Lister.ListFonts(c.Request.Context(), page, limit, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	tracer().Debugf("listing page %d/%d with %d fonts", cp.Page, cp.TotalPages, len(cp.Items))
	c.JSON(http.StatusOK, catalog.NewListResponse(cp))
}

// StatusCode maps an error to an HTTP status.
func StatusCode(err error) int {
	switch core.Code(err) {
	case core.NOERROR:
		return http.StatusOK
	case core.EEMPTY, core.EMISSING:
		return http.StatusNotFound
	case core.EINVALID:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := StatusCode(err)
	if status >= 500 {
		tracer().Errorf("listing failed: %v", err)
	} else {
		tracer().Infof("listing refused: %v", err)
	}
	c.JSON(status, catalog.ErrorResponse{
		Error: core.UserMessage(err),
		Code:  core.Code(err),
	})
}

func parseInt(s string, def int) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def, false
	}
	return n, true
}
