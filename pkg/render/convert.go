package render

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/matzehuels/acotour/pkg/errors"
)

// converter is the external SVG converter binary (from librsvg).
var converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF with rsvg-convert. A missing converter
// yields an UNSUPPORTED error so callers can report the format as
// unavailable instead of failing the whole run.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convertSVG(ctx, svg, "pdf")
}

func convertSVG(ctx context.Context, svg []byte, format string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)", format)
	}

	cmd := exec.CommandContext(ctx, converter, "-f", format)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, ctx.Err(), "%s conversion canceled", format)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", converter, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
