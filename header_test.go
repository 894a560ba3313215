package casematch

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLicenseHeaders checks that a license header is followed by
// exactly one blank line, as gofmt leaves it.
func TestLicenseHeaders(t *testing.T) {
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		bs, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(bs, []byte("/*")) {
			return nil
		}
		end := bytes.Index(bs, []byte("*/\n"))
		if end < 0 {
			t.Errorf("%s: unterminated header", path)
			return nil
		}
		if bytes.HasPrefix(bs[end+3:], []byte("\n\n")) {
			t.Errorf("%s: more than one blank line after the header", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
