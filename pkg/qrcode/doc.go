// Package qrcode renders provisioning URIs (for example otpauth:// links) as
// QR code images, either as raw PNG bytes or as a data URI for an <img> tag.
//
// Rendering is purely presentational: the image encodes the exact content
// string it is given. The package wraps github.com/skip2/go-qrcode.
//
// # Usage
//
//	png, err := qrcode.Generate(uri)
//	if err != nil {
//		// handle error
//	}
//
//	dataURI, err := qrcode.GenerateDataURI(uri, qrcode.WithSize(320), qrcode.WithRecoveryLevel(qrcode.High))
//
// # Error Handling
//
// ErrEmptyContent is returned for empty or whitespace-only content and
// ErrFailedToGenerateQRCode wraps failures of the underlying encoder.
package qrcode
