package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}
	return uint(n), nil
}

// QueryBool treats "1", "true" and "yes" as true. Anything else is false.
func QueryBool(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// QueryInt returns the query value when it parses as a positive integer.
// Larger values are capped at max when max is positive.
func QueryInt(c *gin.Context, key string, defaultVal, max int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.NewValidationError(key + " must be a positive integer")
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}
