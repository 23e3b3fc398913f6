package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("limit", "10"), 10)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Envelope builds the standard pagination block: current page, total page
// count, and whether neighbours exist.
func (p Pagination) Envelope(total int64) fiber.Map {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return fiber.Map{
		"current": p.Page,
		"total":   totalPages,
		"hasNext": int64(p.Page*p.Limit) < total,
		"hasPrev": p.Page > 1,
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
