package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
)

// statusOf maps a Result to its HTTP status: 200 on success, 400 otherwise
func statusOf(r domain.Result) int {
	if r.Status {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

func respond(c *gin.Context, res domain.Result) {
	c.JSON(statusOf(res), res)
}

func respondData[T any](c *gin.Context, res domain.DataResult[T]) {
	c.JSON(statusOf(res.Result), res)
}

// bind decodes the JSON body into req and answers 400 on failure
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, domain.Failure(domain.MsgInvalidBody))
		return false
	}
	return true
}

func forbid(c *gin.Context) {
	c.JSON(http.StatusForbidden, domain.Failure(domain.MsgNotAuthorized))
}
