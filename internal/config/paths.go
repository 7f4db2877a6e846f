package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveTaskFile turns the configured task_file into a clean absolute
// path. $VAR references and a leading ~ are expanded first; a relative
// result is taken from workDir.
func resolveTaskFile(workDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("task_file is empty")
	}
	expanded, err := expandPath(p)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(workDir, expanded)
	}
	return filepath.Clean(expanded), nil
}

// expandPath expands $VAR and ${VAR} references, then a leading ~ or
// ~/ to the home directory. ~user forms are left alone.
func expandPath(p string) (string, error) {
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", p, err)
	}
	return filepath.Join(home, p[1:]), nil
}
