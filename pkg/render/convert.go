package render

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/ringforge/ringforge/pkg/errors"
)

// converter is the external SVG rasterizer. librsvg honors the "mm"
// document units, so PDF exports keep the true-scale dimensions that CAM
// import depends on.
const converter = "rsvg-convert"

// ToPDF renders a board drawing to PDF for print-and-check proofs.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG rasterizes a board drawing at the given scale factor. Scale 2.0
// doubles the pixel density; previews served over HTTP use it to stay
// crisp on high-DPI displays.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)",
			format)
	}

	cmd := exec.Command(converter, append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", converter, stderr.String())
	}
	return out.Bytes(), nil
}
