package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

// DefaultSize is the image width and height in pixels.
const DefaultSize = 256

// RecoveryLevel is the error correction level of the symbol.
type RecoveryLevel = skipqrcode.RecoveryLevel

const (
	Low     = skipqrcode.Low     // 7% error recovery
	Medium  = skipqrcode.Medium  // 15% error recovery
	High    = skipqrcode.High    // 25% error recovery
	Highest = skipqrcode.Highest // 30% error recovery
)

type options struct {
	size          int
	level         RecoveryLevel
	disableBorder bool
}

// Option configures rendering.
type Option func(*options)

// WithSize sets the image size in pixels. Non-positive values keep the default.
func WithSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.size = size
		}
	}
}

// WithRecoveryLevel sets the error correction level.
func WithRecoveryLevel(level RecoveryLevel) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithoutBorder removes the quiet zone around the symbol.
func WithoutBorder() Option {
	return func(o *options) {
		o.disableBorder = true
	}
}

// Generate renders content as a PNG image.
func Generate(content string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	o := options{size: DefaultSize, level: Medium}
	for _, opt := range opts {
		opt(&o)
	}

	q, err := skipqrcode.New(content, o.level)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	q.DisableBorder = o.disableBorder

	png, err := q.PNG(o.size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateDataURI renders content and returns "data:image/png;base64,...".
//
//	<img src="{{.QRCode}}">
func GenerateDataURI(content string, opts ...Option) (string, error) {
	png, err := Generate(content, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
