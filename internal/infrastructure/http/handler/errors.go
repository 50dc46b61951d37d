package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fidc/receivables-core/pkg/apperr"
)

// respondError maps a domain error to an HTTP status using its apperr.Kind
// when present, falling back to 500 for anything untyped.
func respondError(c *gin.Context, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindExhausted:
		status = http.StatusConflict
	case apperr.KindBankDisabled:
		status = http.StatusUnprocessableEntity
	case apperr.KindCNABBuildError:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": string(kind)})
}
