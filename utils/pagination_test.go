package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func parseFrom(t *testing.T, target string) Pagination {
	t.Helper()
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	assert.NoError(t, err)
	defer resp.Body.Close()
	return got
}

func TestParsePaginationDefaults(t *testing.T) {
	p := parseFrom(t, "/")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestParsePagination(t *testing.T) {
	p := parseFrom(t, "/?page=3&limit=20")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset)
}

func TestParsePaginationRejectsGarbage(t *testing.T) {
	p := parseFrom(t, "/?page=abc&limit=-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestEnvelope(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	env := p.Envelope(25)
	assert.Equal(t, 1, env["current"])
	assert.Equal(t, 3, env["total"])
	assert.Equal(t, true, env["hasNext"])
	assert.Equal(t, false, env["hasPrev"])
}

func TestEnvelopeLastPage(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	env := p.Envelope(25)
	assert.Equal(t, 3, env["total"])
	assert.Equal(t, false, env["hasNext"])
	assert.Equal(t, true, env["hasPrev"])
}

func TestEnvelopeEmpty(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	env := p.Envelope(0)
	assert.Equal(t, 0, env["total"])
	assert.Equal(t, false, env["hasNext"])
	assert.Equal(t, false, env["hasPrev"])
}

func TestEnvelopeExactMultiple(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10}
	env := p.Envelope(20)
	assert.Equal(t, 2, env["total"])
	assert.Equal(t, false, env["hasNext"])
	assert.Equal(t, true, env["hasPrev"])
}
