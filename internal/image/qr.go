package imagepkg

import (
	qrcode "github.com/skip2/go-qrcode"
)

const DefaultQRSize = 400

// GenerateQRPNG returns PNG bytes of a QR code for the given text. Long
// payloads such as vCards fall back to the low recovery level when they do
// not fit at medium.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		q, err = qrcode.New(text, qrcode.Low)
		if err != nil {
			return nil, err
		}
	}
	return q.PNG(size)
}
