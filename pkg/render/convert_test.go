package render

import (
	"context"
	"testing"

	"github.com/matzehuels/acotour/pkg/errors"
)

func TestToPDFMissingConverter(t *testing.T) {
	old := converter
	converter = "acotour-no-such-converter"
	t.Cleanup(func() { converter = old })

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}
