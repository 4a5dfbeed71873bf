package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const site = "https://lueur.example"

func TestResolveImage_Relative(t *testing.T) {
	assert.Equal(t, "https://lueur.example/images/cat.png", ResolveImage("images/cat.png", site))
}

func TestResolveImage_LeadingSlash(t *testing.T) {
	assert.Equal(t, "https://lueur.example/images/cat.png", ResolveImage("/images/cat.png", site))
	assert.Equal(t, "https://lueur.example/images/cat.png", ResolveImage("//images/cat.png", site))
}

func TestResolveImage_TrailingSlashOnSite(t *testing.T) {
	assert.Equal(t, "https://lueur.example/images/cat.png", ResolveImage("images/cat.png", site+"/"))
}

func TestResolveImage_Absolute(t *testing.T) {
	assert.Equal(t, "https://cdn.example/cat.png", ResolveImage("https://cdn.example/cat.png", site))
	assert.Equal(t, "http://cdn.example/cat.png", ResolveImage("http://cdn.example/cat.png", site))
}

func TestResolveImage_Empty(t *testing.T) {
	assert.Equal(t, "", ResolveImage("", site))
}
