package invert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	errs "github.com/matzehuels/jsoninvert/pkg/errors"
	"github.com/matzehuels/jsoninvert/pkg/observability"
)

// DefaultIndent is the number of spaces used to indent output members.
const DefaultIndent = 4

// defaultFileMode is applied to newly created output files.
const defaultFileMode fs.FileMode = 0o644

// Options configures a conversion.
type Options struct {
	// Indent is the number of spaces per indentation level (0-16).
	Indent int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// DefaultOptions returns the options used by [Convert].
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent}
}

// Validate checks the options and fills in the logger default.
func (o *Options) Validate() error {
	if err := errs.ValidateIndent(o.Indent); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result describes a successful conversion.
type Result struct {
	Input      string
	Output     string
	Entries    int         // Source entries read
	Keys       int         // Keys written to the output
	Collisions []Collision // Overwrites, in order
	Duration   time.Duration
}

// CollisionKeys returns the distinct colliding keys in first-seen order.
func (r *Result) CollisionKeys() []string {
	inv := Inversion{Collisions: r.Collisions}
	return inv.CollisionKeys()
}

// Converter converts JSON files on a filesystem.
type Converter struct {
	Fs afero.Fs
}

// NewConverter creates a converter backed by fsys.
// If fsys is nil, the OS filesystem is used.
func NewConverter(fsys afero.Fs) *Converter {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Converter{Fs: fsys}
}

// Convert inverts the JSON object at input and writes it to output on the
// OS filesystem with default options.
func Convert(ctx context.Context, input, output string) (*Result, error) {
	return NewConverter(nil).Convert(ctx, input, output, DefaultOptions())
}

// Convert reads the JSON object at input, inverts it, and writes the
// result to output, replacing any existing file.
//
// The input is fully read and closed before the output is written. On
// any error the output path is left untouched.
func (c *Converter) Convert(ctx context.Context, input, output string, opts Options) (res *Result, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := errs.ValidatePath(input); err != nil {
		return nil, err
	}
	if err := errs.ValidatePath(output); err != nil {
		return nil, err
	}

	start := time.Now()
	entries := 0
	hooks := observability.Convert()
	hooks.OnConvertStart(ctx, input)
	defer func() {
		hooks.OnConvertComplete(ctx, input, output, entries, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.read(input)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("read input", "path", input, "bytes", len(data))

	src, err := Decode(data)
	if err != nil {
		return nil, err
	}

	inv, err := Invert(ctx, src)
	if err != nil {
		return nil, err
	}
	entries = inv.Entries

	var buf bytes.Buffer
	if err := Encode(&buf, inv.Doc, opts.Indent); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode output")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.write(output, buf.Bytes()); err != nil {
		return nil, err
	}

	res = &Result{
		Input:      input,
		Output:     output,
		Entries:    inv.Entries,
		Keys:       len(inv.Doc.Keys()),
		Collisions: inv.Collisions,
		Duration:   time.Since(start),
	}
	opts.Logger.Debug("wrote output",
		"path", output,
		"bytes", buf.Len(),
		"keys", res.Keys,
		"collisions", len(res.Collisions))
	return res, nil
}

// read returns the full contents of the file at path.
func (c *Converter) read(path string) ([]byte, error) {
	f, err := c.Fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errs.New(errs.ErrCodeInternal, "%s is a directory", path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read %s", path)
	}
	return data, nil
}

// write replaces the file at path with data.
// Data goes to a temporary file in the same directory which is then
// renamed over path. An existing file keeps its permissions.
func (c *Converter) write(path string, data []byte) (err error) {
	mode := defaultFileMode
	if info, statErr := c.Fs.Stat(path); statErr == nil {
		if info.IsDir() {
			return errs.New(errs.ErrCodeInternal, "%s is a directory", path)
		}
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(c.Fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = c.Fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "close %s", tmpName)
	}
	if err = c.Fs.Chmod(tmpName, mode); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "chmod %s", tmpName)
	}
	if err = c.Fs.Rename(tmpName, path); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}
