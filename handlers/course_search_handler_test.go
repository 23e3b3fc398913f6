package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/edumart/course_market/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func searchParamsFrom(t *testing.T, target string) CourseSearchParams {
	t.Helper()
	app := fiber.New()
	var got CourseSearchParams
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseCourseSearchParams(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	assert.NoError(t, err)
	defer resp.Body.Close()
	return got
}

func TestParseCourseSearchParamsDefaults(t *testing.T) {
	p := searchParamsFrom(t, "/")
	assert.Empty(t, p.Query)
	assert.Empty(t, p.Tags)
	assert.Equal(t, "createdAt", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Nil(t, p.MinPrice)
	assert.Nil(t, p.MaxPrice)
}

func TestParseCourseSearchParams(t *testing.T) {
	p := searchParamsFrom(t, "/?q=algebra&tags=math,%20calculus,&level=beginner&minPrice=10&maxPrice=99.5&minRating=4")
	assert.Equal(t, "algebra", p.Query)
	assert.Equal(t, []string{"math", "calculus"}, p.Tags)
	assert.Equal(t, "beginner", p.Level)
	assert.NotNil(t, p.MinPrice)
	assert.Equal(t, 10.0, *p.MinPrice)
	assert.NotNil(t, p.MaxPrice)
	assert.Equal(t, 99.5, *p.MaxPrice)
	assert.NotNil(t, p.MinRating)
	assert.Equal(t, 4.0, *p.MinRating)
}

func TestParseCourseSearchParamsBadNumbers(t *testing.T) {
	p := searchParamsFrom(t, "/?minPrice=cheap&maxDuration=long")
	assert.Nil(t, p.MinPrice)
	assert.Nil(t, p.MaxDuration)
}

func TestOrderClauseWhitelist(t *testing.T) {
	cases := []struct {
		params CourseSearchParams
		want   string
	}{
		{CourseSearchParams{}, "created_at desc"},
		{CourseSearchParams{SortBy: "price", SortOrder: "asc"}, "price asc"},
		{CourseSearchParams{SortBy: "rating"}, "rating_average desc"},
		{CourseSearchParams{SortBy: "title", SortOrder: "ASC"}, "title asc"},
		{CourseSearchParams{SortBy: "createdAt"}, "created_at desc"},
		{CourseSearchParams{SortBy: "password; DROP TABLE"}, "created_at desc"},
		{CourseSearchParams{SortBy: "price", SortOrder: "up"}, "price desc"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.params.OrderClause(), "sortBy=%q sortOrder=%q", tc.params.SortBy, tc.params.SortOrder)
	}
}

func TestBuildSuggestions(t *testing.T) {
	courses := []models.Course{
		{Title: "Intro to Algebra", Subject: "Math", Tags: []string{"algebra", "basics"}},
		{Title: "Linear Algebra", Subject: "Math", Tags: []string{"algebra"}},
	}

	got := buildSuggestions(courses, "algebra", 10)

	texts := make([]string, 0, len(got))
	for _, s := range got {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"Intro to Algebra", "algebra", "Linear Algebra"}, texts)
	assert.Equal(t, "title", got[0].Type)
	assert.Equal(t, "tag", got[1].Type)
}

func TestBuildSuggestionsLimit(t *testing.T) {
	courses := []models.Course{
		{Title: "Go 101", Subject: "go", Tags: []string{"golang", "gopher"}},
	}
	got := buildSuggestions(courses, "go", 2)
	assert.Len(t, got, 2)
}

func TestBuildSuggestionsNoMatch(t *testing.T) {
	courses := []models.Course{{Title: "Chemistry", Subject: "Science"}}
	got := buildSuggestions(courses, "history", 5)
	assert.Empty(t, got)
}
