package pdfextract

import (
	"bytes"
	"errors"
	"io"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument is returned for a zero-length input.
var ErrEmptyDocument = errors.New("empty pdf document")

// ExtractTextFromBytes returns the PDF's plain text. A PDF without a text
// layer yields an empty string and a nil error.
func ExtractTextFromBytes(b []byte) (string, error) {
	if len(b) == 0 {
		return "", ErrEmptyDocument
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
