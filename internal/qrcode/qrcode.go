// Package qrcode renders WhatsApp connection QR codes. The image carries
// a caption under the code naming the salon it belongs to.
package qrcode

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"strconv"
	"time"

	"github.com/chai2010/webp"
	goqr "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionHeight = 24

// Uploader publishes an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type Renderer struct {
	size     int
	uploader Uploader
}

// NewRenderer renders codes of size pixels. With a nil uploader payloads
// are inline PNG data URIs; otherwise they are URLs of uploaded webp files.
func NewRenderer(size int, uploader Uploader) *Renderer {
	return &Renderer{size: size, uploader: uploader}
}

// ConnectURL is the content encoded in a salon's connection QR code.
func ConnectURL(salonID, sessionID string, at time.Time) string {
	q := url.Values{}
	q.Set("salon", salonID)
	q.Set("session", sessionID)
	q.Set("timestamp", strconv.FormatInt(at.UnixMilli(), 10))
	return "whatsapp://connect?" + q.Encode()
}

func Caption(salonName string) string {
	return "QR Code for Salon " + salonName
}

// Render encodes content with caption underneath and returns the payload
// stored on the session. key names the uploaded object.
func (r *Renderer) Render(ctx context.Context, content, caption, key string) (string, error) {
	img, err := r.Image(content, caption)
	if err != nil {
		return "", err
	}

	if r.uploader == nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", err
		}
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}
	return r.uploader.Upload(ctx, key+".webp", buf.Bytes(), "image/webp")
}

// Image draws the QR code for content on a white canvas with caption
// centred below it.
func (r *Renderer) Image(content, caption string) (*image.RGBA, error) {
	code, err := goqr.New(content, goqr.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	symbol := code.Image(r.size)

	canvas := image.NewRGBA(image.Rect(0, 0, r.size, r.size+captionHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, r.size, r.size), symbol, symbol.Bounds().Min, draw.Src)

	face := basicfont.Face7x13
	width := font.MeasureString(face, caption).Ceil()
	x := (r.size - width) / 2
	if x < 0 {
		x = 0
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, r.size+captionHeight-8),
	}
	d.DrawString(caption)

	return canvas, nil
}
