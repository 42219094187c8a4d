package domain

import "errors"

var (
	ErrManifestVersion   = errors.New("unsupported manifest version")
	ErrUnsupportedSource = errors.New("unsupported item source")
	ErrUnsupportedLoader = errors.New("unsupported loader type")
	ErrPathViolation     = errors.New("path outside modpack root")
	ErrNotInstalled      = errors.New("modpack not installed")
	ErrNoFilename        = errors.New("could not determine file name")
	ErrItemNotFound      = errors.New("no matching item version")
)
