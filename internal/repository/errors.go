package repository

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidSlug        = errors.New("invalid slug")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrStorage            = errors.New("storage failure")
)

// storageError tags err as ErrStorage and records a stack trace for the log.
func storageError(err error, format string, args ...any) error {
	return pkgerrors.WithStack(fmt.Errorf("%w: %s: %w", ErrStorage, fmt.Sprintf(format, args...), err))
}

func frontMatterError(err error, slug string) error {
	return pkgerrors.WithStack(fmt.Errorf("%w: %s: %w", ErrInvalidFrontMatter, slug, err))
}
