// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff describes differences between texts for test failures.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a unified diff from want to got, or "" if they are
// equal. If the diff command is unavailable it returns both texts.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	fallback := fmt.Sprintf("want:\n%sgot:\n%s", want, got)
	if _, err := exec.LookPath("diff"); err != nil {
		return fallback
	}
	dir, err := os.MkdirTemp("", "benchplot-diff")
	if err != nil {
		return fallback
	}
	defer os.RemoveAll(dir)
	for name, text := range map[string]string{"want": want, "got": got} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0666); err != nil {
			return fallback
		}
	}

	cmd := exec.Command("diff", "-u", "want", "got")
	cmd.Dir = dir
	// diff exits non-zero when the files differ.
	data, _ := cmd.CombinedOutput()
	if len(data) == 0 {
		return fallback
	}
	return string(data)
}
