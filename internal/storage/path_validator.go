package storage

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"admedia-backoffice/pkg/apierror"
)

// PathValidator jails all file access under a single root directory.
type PathValidator struct {
	rootAbs string
}

func NewPathValidator(root string) (*PathValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	return &PathValidator{rootAbs: rootAbs}, nil
}

func (v *PathValidator) RootAbs() string {
	return v.rootAbs
}

// ResolvePath maps a relative name to an absolute path inside the root,
// rejecting traversal attempts and control characters.
func (v *PathValidator) ResolvePath(name string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	if normalized == "" || normalized == "/" {
		return v.rootAbs, nil
	}

	if strings.Contains(normalized, "\x00") || hasControlCharacters(normalized) {
		return "", apierror.New("INVALID_PATH", "name contains invalid characters", name, http.StatusBadRequest)
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", apierror.New("PATH_TRAVERSAL", "path traversal attempt detected", name, http.StatusForbidden)
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	if cleanRel == "." {
		return v.rootAbs, nil
	}

	resolved, err := filepath.Abs(filepath.Join(v.rootAbs, cleanRel))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(v.rootAbs, resolved) {
		return "", apierror.New("PATH_TRAVERSAL", "resolved path is outside storage root", name, http.StatusForbidden)
	}

	return resolved, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	return strings.HasPrefix(candidateAbs, rootAbs+string(filepath.Separator))
}
