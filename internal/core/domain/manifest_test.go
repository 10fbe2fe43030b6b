package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warpack/warpack/internal/core/domain"
)

func TestManifest_Diff(t *testing.T) {
	recorded := domain.Manifest{
		"WEB-INF/app/a.rb":    "aaaa",
		"WEB-INF/app/b.rb":    "bbbb",
		"index.html":          "cccc",
		"WEB-INF/web.xml":     "dddd",
		"WEB-INF/packages/.x": "eeee",
	}

	current := domain.Manifest{
		"WEB-INF/app/a.rb":    "aaaa", // unchanged
		"WEB-INF/app/b.rb":    "ffff", // changed
		"WEB-INF/web.xml":     "dddd", // unchanged
		"WEB-INF/packages/.x": "0000", // changed
		"stray.txt":           "1111", // extra
	}

	diff := recorded.Diff(current)
	assert.False(t, diff.Empty())
	assert.Equal(t, []string{"index.html"}, diff.Missing)
	assert.Equal(t, []string{"WEB-INF/app/b.rb", "WEB-INF/packages/.x"}, diff.Changed)
	assert.Equal(t, []string{"stray.txt"}, diff.Extra)
}

func TestManifest_Diff_Empty(t *testing.T) {
	m := domain.Manifest{"a": "1", "b": "2"}
	diff := m.Diff(domain.Manifest{"a": "1", "b": "2"})
	assert.True(t, diff.Empty())
	assert.Empty(t, diff.Missing)
	assert.Empty(t, diff.Changed)
	assert.Empty(t, diff.Extra)
}
