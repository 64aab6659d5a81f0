package inline

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLocate_Self(t *testing.T) {
	_, file, line, _ := runtime.Caller(0)
	site, err := Locate(0)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if site.File != file || site.Line != line+1 {
		t.Fatalf("site = %s, want %s:%d", site, file, line+1)
	}
}

func locateCaller() (CallSite, error) { return Locate(1) }

func TestLocate_SkipsFrames(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	site, err := locateCaller()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if filepath.Base(site.File) != "locator_test.go" || site.Line != line+1 {
		t.Fatalf("site = %s, want locator_test.go:%d", site, line+1)
	}
}

func TestLocate_Unresolved(t *testing.T) {
	_, err := Locate(1 << 20)
	if !errors.Is(err, ErrLocationUnresolved) {
		t.Fatalf("err = %v, want ErrLocationUnresolved", err)
	}
}

func TestHere(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	site := Here()
	if !site.Valid() || site.Line != line+1 {
		t.Fatalf("Here = %s, want line %d", site, line+1)
	}
	if (CallSite{}).Valid() {
		t.Fatalf("zero CallSite must be invalid")
	}
}
