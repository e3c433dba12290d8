package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// maxBody caps request bodies, every accepted body is a small JSON object.
const maxBody = 64 << 10

func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(apperr.BadRequestf("failed to read body: %v", err))
		return nil, false
	}
	return body, true
}

// decodeBody decodes and validates the JSON body into dst, recording the error on failure.
func decodeBody(c *gin.Context, dst any) bool {
	body, ok := readBody(c)
	if !ok {
		return false
	}
	if err := dtos.DecodeJSON(body, dst); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}

// bindPatch decodes a partial-update body into dst and returns its fields in body order.
func bindPatch(c *gin.Context, dst dtos.Patch) (sqlgen.Fields, bool) {
	body, ok := readBody(c)
	if !ok {
		return nil, false
	}
	fields, err := dtos.BindPatch(body, dst)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	return fields, true
}
