package util

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pingcap/errors"
)

// AtomicWrite writes content to path atomically by using mv. The parent
// directory is created when missing.
func AtomicWrite(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0776); err != nil {
		return errors.Trace(err)
	}
	// there's a little chance that rand.Int conflicts
	tmpFile := path + ".tmp" + strconv.Itoa(rand.Int())
	if err := os.WriteFile(tmpFile, content, 0666); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.Rename(tmpFile, path))
}

// EscapePath encodes special characters in a string to make it safe for use as
// a file name. Task names default to RFC3339 timestamps which contain ':'.
func EscapePath(input string) string {
	if input == "" {
		return "empty-string"
	}
	var builder strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) && r != '/' && r != '\\' && r != ':' &&
			r != '*' && r != '?' && r != '"' && r != '<' && r != '>' &&
			r != '|' && r != '.' && r != '%' {
			builder.WriteRune(r)
		} else {
			builder.WriteString(fmt.Sprintf("%%%02X", r))
		}
	}
	return builder.String()
}
