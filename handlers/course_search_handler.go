package handlers

import (
	"sort"
	"strconv"
	"strings"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CourseSearchParams is the one parameterized query capability behind every
// catalog listing and search endpoint: the same base predicate
// (published AND active) with optional constraints layered on top.
type CourseSearchParams struct {
	Query       string
	Tags        []string
	Subject     string
	Level       string
	TeacherID   string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	MinDuration *float64
	MaxDuration *float64
	SortBy      string
	SortOrder   string
}

func ParseCourseSearchParams(c *fiber.Ctx) CourseSearchParams {
	params := CourseSearchParams{
		Query:     strings.TrimSpace(c.Query("q", c.Query("search"))),
		Subject:   c.Query("subject"),
		Level:     c.Query("level"),
		TeacherID: c.Query("teacherId"),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	}
	if tags := strings.TrimSpace(c.Query("tags")); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				params.Tags = append(params.Tags, t)
			}
		}
	}
	params.MinPrice = parseFloatQuery(c, "minPrice")
	params.MaxPrice = parseFloatQuery(c, "maxPrice")
	params.MinRating = parseFloatQuery(c, "minRating")
	params.MinDuration = parseFloatQuery(c, "minDuration")
	params.MaxDuration = parseFloatQuery(c, "maxDuration")
	return params
}

func parseFloatQuery(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Apply layers the search constraints onto a course query. Only published,
// active courses are visible through search.
func (p CourseSearchParams) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("is_published = ? AND is_active = ?", true, true)

	if p.Query != "" {
		like := "%" + p.Query + "%"
		db = db.Where(
			"title ILIKE ? OR description ILIKE ? OR subject ILIKE ? OR array_to_string(tags, ' ') ILIKE ?",
			like, like, like, like,
		)
	}
	if len(p.Tags) > 0 {
		db = db.Where("tags && ?", pq.StringArray(p.Tags))
	}
	if p.Subject != "" {
		db = db.Where("subject = ?", p.Subject)
	}
	if p.Level != "" {
		db = db.Where("level = ?", p.Level)
	}
	if p.TeacherID != "" {
		db = db.Where("teacher_id = ?", p.TeacherID)
	}
	if p.MinPrice != nil {
		db = db.Where("price >= ?", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		db = db.Where("price <= ?", *p.MaxPrice)
	}
	if p.MinRating != nil {
		db = db.Where("rating_average >= ?", *p.MinRating)
	}
	if p.MinDuration != nil {
		db = db.Where("duration >= ?", *p.MinDuration)
	}
	if p.MaxDuration != nil {
		db = db.Where("duration <= ?", *p.MaxDuration)
	}
	return db
}

// OrderClause maps the requested sort to a whitelisted column so arbitrary
// input never reaches the ORDER BY.
func (p CourseSearchParams) OrderClause() string {
	column := "created_at"
	switch p.SortBy {
	case "price":
		column = "price"
	case "rating":
		column = "rating_average"
	case "title":
		column = "title"
	}
	direction := "desc"
	if strings.EqualFold(p.SortOrder, "asc") {
		direction = "asc"
	}
	return column + " " + direction
}

func (p CourseSearchParams) ApplySort(db *gorm.DB) *gorm.DB {
	return db.Order(p.OrderClause())
}

// SearchCourses backs the tag, text, and advanced search endpoints; they
// differ only in which parameters the client sends.
func SearchCourses(c *fiber.Ctx) error {
	return ListCourses(c)
}

func SearchCoursesByText(c *fiber.Ctx) error {
	if strings.TrimSpace(c.Query("q")) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Search query is required"})
	}
	return ListCourses(c)
}

func GetAllTags(c *fiber.Ctx) error {
	var tags []string
	err := database.DB.Model(&models.Course{}).
		Where("is_published = ? AND is_active = ?", true, true).
		Select("DISTINCT unnest(tags)").
		Order("unnest(tags)").
		Pluck("unnest(tags)", &tags).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"tags":  tags,
		"count": len(tags),
	})
}

type tagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func GetPopularTags(c *fiber.Ctx) error {
	limit := 10
	if parsed, err := strconv.Atoi(c.Query("limit", "10")); err == nil && parsed > 0 {
		limit = parsed
	}

	var rows []tagCount
	err := database.DB.Model(&models.Course{}).
		Where("is_published = ? AND is_active = ?", true, true).
		Select("unnest(tags) AS tag, count(*) AS count").
		Group("tag").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"popularTags": rows,
		"total":       len(rows),
	})
}

type searchSuggestion struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func GetSearchSuggestions(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.JSON(fiber.Map{"suggestions": []searchSuggestion{}})
	}
	limit := 5
	if parsed, err := strconv.Atoi(c.Query("limit", "5")); err == nil && parsed > 0 {
		limit = parsed
	}

	like := "%" + q + "%"
	var courses []models.Course
	err := database.DB.
		Where("is_published = ? AND is_active = ?", true, true).
		Where("title ILIKE ? OR subject ILIKE ? OR array_to_string(tags, ' ') ILIKE ?", like, like, like).
		Select("title", "subject", "tags").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"suggestions": buildSuggestions(courses, q, limit),
	})
}

func buildSuggestions(courses []models.Course, query string, limit int) []searchSuggestion {
	lower := strings.ToLower(query)
	suggestions := []searchSuggestion{}
	seen := map[string]bool{}

	add := func(kind, text string) {
		if !seen[text] && strings.Contains(strings.ToLower(text), lower) {
			suggestions = append(suggestions, searchSuggestion{Type: kind, Text: text})
			seen[text] = true
		}
	}

	for _, course := range courses {
		add("title", course.Title)
		add("subject", course.Subject)
		tags := append([]string(nil), course.Tags...)
		sort.Strings(tags)
		for _, tag := range tags {
			add("tag", tag)
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
