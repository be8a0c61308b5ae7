package storage

import (
	"bytes"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes a sniffed photo payload.
type ImageInfo struct {
	ContentType string
	Width       int
	Height      int
}

// Sniff inspects a decoded payload and reports its image format and
// dimensions. Sniffing is best-effort: payloads that are not decodable
// images fall back to content-type detection with zero dimensions and are
// never rejected here.
func Sniff(data []byte) ImageInfo {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return ImageInfo{
			ContentType: "image/" + format,
			Width:       cfg.Width,
			Height:      cfg.Height,
		}
	}
	return ImageInfo{ContentType: http.DetectContentType(data)}
}
