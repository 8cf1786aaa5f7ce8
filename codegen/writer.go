package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ResultFileName is the file each saved result is written to.
const ResultFileName = "generated_code.txt"

// SaveResult writes a result's text under outputDir and returns the file path.
func SaveResult(outputDir string, result *Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result must not be nil")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(outputDir, ResultFileName)
	if err := os.WriteFile(path, []byte(result.Text), 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

// SaveStageResults writes each successful stage's text to its own
// subdirectory of outputDir, named after the stage. Failed stages are
// skipped. Returns the written file paths in stage order.
func SaveStageResults(outputDir string, results []StageResult) ([]string, error) {
	paths := make([]string, 0, len(results))
	for _, sr := range results {
		if sr.Err != nil || sr.Result == nil {
			continue
		}

		stageDir := filepath.Join(outputDir, stageSlug(sr.Stage.Name))
		path, err := SaveResult(stageDir, sr.Result)
		if err != nil {
			return paths, fmt.Errorf("save stage %q: %w", sr.Stage.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// stageSlug turns a stage name into a filesystem-safe directory name.
func stageSlug(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
