package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"time"

	"github.com/matzehuels/anchorlayout/pkg/errors"
	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/observability"
)

// Load reads a declaration file, picking the format from its extension.
func (r *Runner) Load(ctx context.Context, path string) (*frame.Set, *frame.Document, error) {
	hooks := observability.Resolve()
	hooks.OnDecodeStart(ctx, path)
	start := time.Now()

	set, doc, err := frame.Load(path)
	if err != nil {
		err = DecodeError(err, path)
		hooks.OnDecodeComplete(ctx, path, 0, time.Since(start), err)
		return nil, nil, err
	}
	hooks.OnDecodeComplete(ctx, path, set.Len(), time.Since(start), nil)
	r.Logger.Debug("decoded declarations", "source", path, "frames", set.Len())
	return set, doc, nil
}

// Decode reads declarations of the given format from rd. source names the
// input in logs and errors.
func (r *Runner) Decode(ctx context.Context, source string, rd io.Reader, format frame.Format) (*frame.Set, *frame.Document, error) {
	hooks := observability.Resolve()
	hooks.OnDecodeStart(ctx, source)
	start := time.Now()

	doc, err := frame.Decode(rd, format)
	var set *frame.Set
	if err == nil {
		set, err = doc.Set()
	}
	if err != nil {
		err = DecodeError(err, source)
		hooks.OnDecodeComplete(ctx, source, 0, time.Since(start), err)
		return nil, nil, err
	}
	hooks.OnDecodeComplete(ctx, source, set.Len(), time.Since(start), nil)
	return set, doc, nil
}

// DecodeError maps producer-boundary failures to coded errors.
func DecodeError(err error, source string) error {
	var coded *errors.Error
	switch {
	case stderrors.As(err, &coded):
		return err
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", source)
	case stderrors.Is(err, frame.ErrUnknownFormat):
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", source)
	case stderrors.Is(err, frame.ErrDuplicateFrame):
		return errors.Wrap(errors.ErrCodeDuplicateFrame, err, "decode %s", source)
	default:
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", source)
	}
}
