package opengl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"room-renderer/scene"
)

// Texture bookkeeping runs without a GL context when upload is replaced.
func newTextureRenderer(log zerolog.Logger, upload func(*scene.Texture) error) *Renderer {
	return &Renderer{
		log:    log,
		failed: make(map[*scene.Texture]bool),
		upload: upload,
	}
}

func TestTexture_FailedUploadWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	r := newTextureRenderer(zerolog.New(&buf), func(*scene.Texture) error {
		calls++
		return errors.New("texture has no pixels")
	})

	tex := &scene.Texture{Name: "broken.png"}
	for i := 0; i < 5; i++ {
		assert.Zero(t, r.Texture(tex))
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, strings.Count(buf.String(), "texture failed to load"))
	assert.Empty(t, r.textures)
}

func TestTexture_UploadsOnce(t *testing.T) {
	calls := 0
	r := newTextureRenderer(zerolog.Nop(), func(tex *scene.Texture) error {
		calls++
		tex.GLID = 7
		return nil
	})

	tex := &scene.Texture{Name: "wood.png"}
	assert.Equal(t, uint32(7), r.Texture(tex))
	assert.Equal(t, uint32(7), r.Texture(tex))
	assert.Equal(t, 1, calls)
	assert.Len(t, r.textures, 1)
	assert.Zero(t, r.Texture(nil))
}
