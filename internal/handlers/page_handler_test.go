package handlers

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/dashboard", safeNext(""))
	assert.Equal(t, "/dashboard", safeNext("https://evil.example"))
	assert.Equal(t, "/dashboard", safeNext("//evil.example"))
	assert.Equal(t, "/dashboard?tab=projects", safeNext("/dashboard?tab=projects"))
}

func TestGroupSkills(t *testing.T) {
	groups := groupSkills([]models.Skill{
		{Name: "Go", Category: "Backend"},
		{Name: "SQL", Category: "Backend"},
		{Name: "CSS", Category: "Frontend"},
	})
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "Backend", groups[0].Category)
		assert.Len(t, groups[0].Skills, 2)
		assert.Equal(t, "Frontend", groups[1].Category)
	}
}

func TestTemplatesParse(t *testing.T) {
	for _, name := range []string{"login", "register", "dashboard", "portfolio", "offline", "notfound"} {
		assert.NotNil(t, pages.Lookup(name), name)
	}
}
