package httputil

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// ParsePagination reads the offset (default 0) and limit (default 50, at most
// 100) query parameters.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = boundedInt(c.Query("offset"), 0, 0, math.MaxInt32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = boundedInt(c.Query("limit"), defaultLimit, 1, maxLimit)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxLimit)
	}

	return offset, limit, nil
}

func boundedInt(raw string, def, lo, hi int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", v, lo, hi)
	}
	return v, nil
}

// ParseUint32Param parses the named path parameter as a base-10 uint32.
func ParseUint32Param(c *gin.Context, name string) (uint32, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: must be an integer between 0 and %d", name, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}

// ParseUUIDParam parses the named path parameter as a UUID.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter: must be a valid UUID", name)
	}
	return id, nil
}
