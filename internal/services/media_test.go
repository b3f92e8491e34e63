package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMediaKind(t *testing.T) {
	cases := map[string]string{
		"image":  "image",
		"images": "image",
		"video":  "video",
		"videos": "video",
		"model":  "model",
		"models": "model",
		"Images": "image",
	}

	for in, want := range cases {
		got, ok := NormalizeMediaKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := NormalizeMediaKind("documents")
	assert.False(t, ok)
}

func TestCheckExtension(t *testing.T) {
	s := NewMediaService(t.TempDir())

	require.NoError(t, s.CheckExtension("image", "campus.jpg"))
	require.NoError(t, s.CheckExtension("image", "CAMPUS.JPG"))
	require.NoError(t, s.CheckExtension("video", "tour.mp4"))
	require.NoError(t, s.CheckExtension("model", "robot.glb"))

	err := s.CheckExtension("image", "malware.exe")
	assert.ErrorIs(t, err, ErrExtensionDenied)

	err = s.CheckExtension("image", "noextension")
	assert.ErrorIs(t, err, ErrExtensionDenied)

	err = s.CheckExtension("document", "report.pdf")
	assert.ErrorIs(t, err, ErrInvalidMediaType)
}
