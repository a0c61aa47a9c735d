package jd

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/interview-coach/pkg/scorer"
	"github.com/pkg/errors"
)

// Stdin is the input name that reads the job description from standard input.
const Stdin = "-"

const maxRequirements = 40

// Read loads a job description from a file, or from stdin when input is "-".
// HTML files are reduced to their text.
func Read(input string, stdin io.Reader) (content string, err error) {
	if input == Stdin {
		content, err = readFrom(stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read JD from stdin")
			return content, err
		}
		return content, err
	}

	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		err = errors.Errorf("cannot read JD from URL %s: save the posting to a file first", input)
		return content, err
	}

	content, err = readFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read JD from file: %s", input)
		return content, err
	}

	return content, err
}

// readFile reads job description text from a file.
func readFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		content = stripBasicHTML(content)
	}

	if strings.TrimSpace(content) == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

func readFrom(r io.Reader) (content string, err error) {
	if r == nil {
		err = errors.New("no input stream")
		return content, err
	}

	var data []byte
	data, err = io.ReadAll(r)
	if err != nil {
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("input is empty")
		return content, err
	}

	return content, err
}

// Requirements splits job description text into requirement lines. Bullet
// markers are removed and lines shorter than three words are dropped. When
// no line qualifies the whole text is returned as one requirement.
func Requirements(text string) (reqs scorer.Requirements) {
	reqs = make(scorer.Requirements, 0)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = trimBullet(line)
		if len(strings.Fields(line)) < 3 {
			continue
		}
		reqs = append(reqs, line)
		if len(reqs) == maxRequirements {
			break
		}
	}

	if len(reqs) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			reqs = append(reqs, trimmed)
		}
	}

	return reqs
}

func trimBullet(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•·>#")

	// Numbered items: "1." or "2)"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}

	return strings.TrimSpace(line)
}

// stripBasicHTML removes basic HTML tags (simple implementation).
func stripBasicHTML(html string) (text string) {
	text = html

	// Remove script and style tags with their content
	text = removeTagAndContent(text, "script")
	text = removeTagAndContent(text, "style")

	// Block-level closers become line breaks so list items stay separate
	text = strings.NewReplacer("</li>", "\n", "</p>", "\n", "<br>", "\n", "<br/>", "\n").Replace(text)

	// Remove HTML tags
	inTag := false
	result := strings.Builder{}
	for _, char := range text {
		if char == '<' {
			inTag = true
			continue
		}
		if char == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(char)
		}
	}

	text = strings.TrimSpace(result.String())

	return text
}

// removeTagAndContent removes a specific HTML tag and its content.
func removeTagAndContent(html, tag string) (result string) {
	result = html
	openTag := "<" + tag
	closeTag := "</" + tag + ">"

	for {
		startIdx := strings.Index(result, openTag)
		if startIdx == -1 {
			break
		}

		endIdx := strings.Index(result[startIdx:], closeTag)
		if endIdx == -1 {
			break
		}

		endIdx += startIdx + len(closeTag)
		result = result[:startIdx] + result[endIdx:]
	}

	return result
}
