// Package qr renders the public menu link as an inline PNG data URL.
package qr

import (
	"encoding/base64"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// EncodeDataURL renders text as a QR PNG and returns it as a base64 data
// URL, ready to store inline and serve to browsers.
func EncodeDataURL(text string) (string, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, imageSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// MenuURL builds the fixed public URL a menu's QR code points at.
func MenuURL(baseURL, menuID string) string {
	return strings.TrimRight(baseURL, "/") + "/" + menuID
}
