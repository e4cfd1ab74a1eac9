package check

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// MaxTotalChunks is the largest chunk count Build accepts. Keep it in sync
// with the lte tag on params.TotalChunks.
const MaxTotalChunks = 1 << 24

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is a validated check request. The zero value is not valid; obtain
// one from Builder.Build.
type Config struct {
	dir         string
	fileSize    int64
	totalChunks int
	skipSize    bool
}

// Dir is the directory holding the chunk files.
func (c Config) Dir() string { return c.dir }

// FileSize is the expected total size of all chunks in bytes.
func (c Config) FileSize() int64 { return c.fileSize }

// TotalChunks is the expected number of chunks.
func (c Config) TotalChunks() int { return c.totalChunks }

// SkipSize reports whether the aggregate size comparison is disabled.
func (c Config) SkipSize() bool { return c.skipSize }

type params struct {
	Dir         string `validate:"required"`
	TotalChunks int    `validate:"gt=0,lte=16777216"`
	FileSize    int64  `validate:"gte=0"`
	SkipSize    bool
}

var fieldNames = map[string]string{
	"Dir":         "dir",
	"TotalChunks": "total_chunks",
	"FileSize":    "file_size",
}

var tagReasons = map[string]string{
	"required": "is not set",
	"gt":       "must be set to a positive number",
	"gte":      "must not be negative",
	"lte":      "must not exceed " + strconv.Itoa(MaxTotalChunks),
}

// Builder stages a Config. Setters may be called in any order. An unset file
// size means the chunks must add up to zero bytes; call SkipSizeCheck to
// verify chunk presence only.
//
// Example:
//
//	err := check.New().
//		InDir("/var/cache/upload-42").
//		FileSize(res.FileSize).
//		TotalChunks(res.TotalChunks).
//		Run(ctx)
type Builder struct {
	p params
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// InDir sets the directory holding the chunk files.
func (b *Builder) InDir(dir string) *Builder {
	b.p.Dir = dir
	return b
}

// FileSize sets the size of the original file in bytes.
func (b *Builder) FileSize(size int64) *Builder {
	b.p.FileSize = size
	return b
}

// TotalChunks sets the number of chunks the original file was split into.
func (b *Builder) TotalChunks(n int) *Builder {
	b.p.TotalChunks = n
	return b
}

// SkipSizeCheck disables the aggregate size comparison.
func (b *Builder) SkipSizeCheck() *Builder {
	b.p.SkipSize = true
	return b
}

// Build validates the staged values. It never touches the filesystem and
// may be called repeatedly.
func (b *Builder) Build() (Config, error) {
	if err := validate.Struct(b.p); err != nil {
		return Config{}, toConfigError(err)
	}
	return Config{
		dir:         b.p.Dir,
		fileSize:    b.p.FileSize,
		totalChunks: b.p.TotalChunks,
		skipSize:    b.p.SkipSize,
	}, nil
}

// Run builds the config and checks it on the calling goroutine.
func (b *Builder) Run(ctx context.Context, opts ...Option) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}
	return NewSyncRunner(cfg, opts...).Run(ctx)
}

func toConfigError(err error) *ConfigError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Field: "config", Reason: err.Error()}
	}
	fe := verrs[0]
	field, ok := fieldNames[fe.StructField()]
	if !ok {
		field = fe.Field()
	}
	reason, ok := tagReasons[fe.Tag()]
	if !ok {
		reason = "failed " + fe.Tag() + " validation"
	}
	return &ConfigError{Field: field, Reason: reason}
}
