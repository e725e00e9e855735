package frontend

import (
	"io/fs"
	"testing"
)

func TestAssetsHasIndex(t *testing.T) {
	assets, err := Assets()
	if err != nil {
		t.Fatalf("Assets: %v", err)
	}
	if _, err := fs.Stat(assets, "index.html"); err != nil {
		t.Errorf("index.html missing: %v", err)
	}
}
