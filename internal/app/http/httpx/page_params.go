package httpx

import (
	"strconv"
	"strings"

	"blog-app/internal/pagination"

	"github.com/gin-gonic/gin"
)

// PageParams reads the standard list query parameters:
// ?page=&limit=&sort=&dir=&search= (search is comma-separated terms).
func PageParams(c *gin.Context) pagination.Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	p := pagination.Params{
		Page:          page,
		Limit:         limit,
		SortColumn:    c.Query("sort"),
		SortDirection: c.Query("dir"),
	}

	if search, ok := c.GetQuery("search"); ok {
		p.SearchTerms = strings.Split(search, ",")
	}

	return p
}
