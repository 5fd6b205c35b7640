package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRSizePx = 160

// ControlQR returns a QR code of the HTTP control URL, shown in a
// corner of the canvas so a phone or laptop on the same network can
// drive the turtle. An empty URL yields (nil, nil).
func ControlQR(url string, sizePx int) (image.Image, error) {
	if url == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRSizePx
	}
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return code.Image(sizePx), nil
}
