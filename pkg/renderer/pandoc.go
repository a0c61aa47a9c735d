package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nikogura/interview-coach/pkg/report"
	"github.com/pkg/errors"
)

// ExportPDF renders r as markdown and converts it to a PDF at outputPath.
// The intermediate markdown sits next to the PDF and is removed unless
// keepMarkdown is set.
func ExportPDF(ctx context.Context, r report.Report, outputPath string, keepMarkdown bool) (markdownPath string, err error) {
	markdownPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".md"

	var sb strings.Builder
	err = report.WriteMarkdown(&sb, r)
	if err != nil {
		return markdownPath, err
	}

	err = WriteMarkdown(sb.String(), markdownPath)
	if err != nil {
		return markdownPath, err
	}

	err = RenderPDF(ctx, markdownPath, outputPath)
	if err != nil {
		return markdownPath, err
	}

	if !keepMarkdown {
		err = CleanupMarkdown(markdownPath)
		if err != nil {
			return markdownPath, err
		}
		markdownPath = ""
	}

	return markdownPath, err
}

// RenderPDF converts markdown to PDF using pandoc.
func RenderPDF(ctx context.Context, markdownPath, outputPath string) (err error) {
	// Validate pandoc exists
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	// Validate input file exists
	err = validateFiles(markdownPath)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	cmd := exec.CommandContext(ctx,
		"pandoc",
		"-f", "markdown",
		"-o", outputPath,
		"-V", "geometry:margin=1in",
		markdownPath,
	)

	// Capture output
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to export PDFs)")
		return err
	}
	return err
}

// validateFiles checks that required files exist.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	// Write file
	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}

// CleanupMarkdown removes intermediate markdown files.
func CleanupMarkdown(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove markdown file: %s", path)
			return err
		}
	}
	return err
}
