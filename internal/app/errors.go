package app

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotPDF         = errors.New("only PDF files are allowed")
	ErrEmptyFile      = errors.New("uploaded file is empty")
	ErrFileTooLarge   = errors.New("uploaded file is too large")
	ErrDuplicatePaper = errors.New("a paper with identical content already exists")
	ErrPaperNotFound  = errors.New("paper not found")
)
