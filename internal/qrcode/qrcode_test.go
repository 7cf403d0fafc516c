package qrcode

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	key         string
	contentType string
	body        []byte
}

func (u *recordingUploader) Upload(_ context.Context, key string, body []byte, contentType string) (string, error) {
	u.key, u.body, u.contentType = key, body, contentType
	return "https://cdn.example.com/" + key, nil
}

func TestConnectURL(t *testing.T) {
	at := time.UnixMilli(1741600000123)
	raw := ConnectURL("salon-1", "sess-9", at)

	require.True(t, strings.HasPrefix(raw, "whatsapp://connect?"))
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "salon-1", u.Query().Get("salon"))
	assert.Equal(t, "sess-9", u.Query().Get("session"))
	assert.Equal(t, "1741600000123", u.Query().Get("timestamp"))
}

func TestRenderInlinePNG(t *testing.T) {
	r := NewRenderer(128, nil)

	payload, err := r.Render(context.Background(), "whatsapp://connect?salon=a", Caption("Studio"), "qr/a")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(payload, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, "data:image/png;base64,"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128+captionHeight, img.Bounds().Dy())
}

func TestRenderUploadsWebp(t *testing.T) {
	up := &recordingUploader{}
	r := NewRenderer(96, up)

	payload, err := r.Render(context.Background(), "content", "caption", "qr/salon/session")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/qr/salon/session.webp", payload)
	assert.Equal(t, "image/webp", up.contentType)
	assert.NotEmpty(t, up.body)
}

func TestImageIsDeterministic(t *testing.T) {
	r := NewRenderer(64, nil)

	a, err := r.Image("same", "caption")
	require.NoError(t, err)
	b, err := r.Image("same", "caption")
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}
