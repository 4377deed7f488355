// Package ocr implements optical character recognition using the tesseract
// CLI, with pdftoppm rasterization for PDF inputs.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"lexdocs/internal/config"
	"lexdocs/internal/port"
)

// TesseractEngine runs the tesseract binary over a single image and parses
// its TSV output for per-token confidences. Implements port.OCREngine.
type TesseractEngine struct {
	bin      string
	language string
}

// NewTesseractEngine creates an engine from config. Available reports whether
// the binary can actually be invoked; callers should check it once at startup.
func NewTesseractEngine(cfg *config.OCRConfig) *TesseractEngine {
	bin := cfg.TesseractBin
	if bin == "" {
		bin = "tesseract"
	}
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	return &TesseractEngine{bin: bin, language: lang}
}

// Available reports whether the tesseract binary is on the path.
func (e *TesseractEngine) Available() bool {
	_, err := exec.LookPath(e.bin)
	return err == nil
}

func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (*port.RecognizeOutput, error) {
	tmp, err := os.CreateTemp("", "lexdocs-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("creating temp image: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(image); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp image: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.bin, tmp.Name(), "stdout", "-l", e.language, "--psm", "3", "tsv")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running tesseract: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	return parseTSV(out.Bytes()), nil
}

// parseTSV reads tesseract's TSV output. Word rows are level 5; their conf
// column holds a 0-100 score, -1 marks non-word rows. Line and paragraph
// boundaries become newlines in the assembled text.
func parseTSV(data []byte) *port.RecognizeOutput {
	out := &port.RecognizeOutput{}
	var b strings.Builder
	lastLine := ""

	for _, row := range strings.Split(string(data), "\n") {
		cols := strings.Split(row, "\t")
		if len(cols) < 12 {
			continue
		}
		level := cols[0]
		if level != "5" {
			continue
		}

		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}

		// page/block/par/line identify the text line a word belongs to
		lineKey := strings.Join(cols[1:5], ":")
		if b.Len() > 0 {
			if lineKey != lastLine {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		lastLine = lineKey

		b.WriteString(word)
		out.TokenConfidences = append(out.TokenConfidences, int(conf))
	}

	out.Text = b.String()
	return out
}

// rasterizePDF converts a PDF into per-page PNG files using pdftoppm and
// returns the image paths in page order. The caller owns the temp directory
// cleanup via the returned func.
func rasterizePDF(ctx context.Context, bin string, pdf []byte, maxPages, dpi int) ([]string, func(), error) {
	if bin == "" {
		bin = "pdftoppm"
	}

	tmpDir, err := os.MkdirTemp("", "lexdocs-raster-*")
	if err != nil {
		return nil, nil, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o600); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("writing temp pdf: %w", err)
	}

	args := []string{"-png", "-r", strconv.Itoa(dpi)}
	if maxPages > 0 {
		args = append(args, "-f", "1", "-l", strconv.Itoa(maxPages))
	}
	args = append(args, pdfPath, filepath.Join(tmpDir, "page"))

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("running pdftoppm: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(filepath.Join(tmpDir, "page-*.png"))
	if err != nil || len(pages) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no page images")
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order
	sortPaths(pages)
	return pages, cleanup, nil
}

func sortPaths(paths []string) {
	for i := 1; i < len(paths); i++ {
		for j := i; j > 0 && paths[j] < paths[j-1]; j-- {
			paths[j], paths[j-1] = paths[j-1], paths[j]
		}
	}
}
