package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/life-record-api/internal/constants"
)

// PaginationParams holds skip/limit pagination parameters
type PaginationParams struct {
	Skip  int
	Limit int
}

// GetPaginationParams extracts and clamps skip/limit from the query string
func GetPaginationParams(c *gin.Context) PaginationParams {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}

	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}
}
