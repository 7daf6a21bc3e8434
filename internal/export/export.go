// Package export writes a rendered canvas surface to a byte sink.
package export

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// JPEGQuality is fixed: exports are always written at maximum quality.
const JPEGQuality = 100

// Format selects the container of the exported raster.
type Format uint8

const (
	FormatJPEG Format = iota
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPDF:
		return "pdf"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Ext returns the file extension, dot included.
func (f Format) Ext() string {
	if f == FormatPDF {
		return ".pdf"
	}
	return ".jpg"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg", "":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return 0, fmt.Errorf("export: unknown format %q", s)
}

// JPEG encodes img at JPEGQuality.
func JPEG(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("export: jpeg: %w", err)
	}
	return nil
}

// Encode writes img to w in format f. Once ctx is done every further write
// fails, so a cancelled export abandons the partial output and reports the
// context error.
func Encode(ctx context.Context, w io.Writer, img image.Image, f Format) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	cw := &ctxWriter{ctx: ctx, w: w}
	var err error
	switch f {
	case FormatJPEG:
		err = JPEG(cw, img)
	case FormatPDF:
		err = PDF(cw, img)
	default:
		return fmt.Errorf("export: unknown format %v", f)
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (cw *ctxWriter) Write(p []byte) (int, error) {
	if err := cw.ctx.Err(); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

// FileName returns a fresh download name such as "myPaint1234567.jpg".
func FileName(f Format) string {
	return fmt.Sprintf("myPaint%d%s", rand.Uint32(), f.Ext())
}

// ToFile exports img into dir under a fresh FileName, creating dir when
// needed, and returns the written path. A failed export leaves no file.
func ToFile(ctx context.Context, dir string, img image.Image, f Format) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
	}
	path := filepath.Join(dir, FileName(f))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	err = Encode(ctx, file, img, f)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("export: %w", cerr)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
