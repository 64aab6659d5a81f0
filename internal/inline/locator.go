package inline

import (
	"fmt"
	"runtime"
)

// CallSite is the source line of a render call.  The zero value is
// invalid.
type CallSite struct {
	File string
	Line int
}

func (s CallSite) String() string { return fmt.Sprintf("%s:%d", s.File, s.Line) }

// Valid reports whether s names a file and a positive line.
func (s CallSite) Valid() bool { return s.File != "" && s.Line > 0 }

// Locate returns the call site skip frames above its caller.  With skip 0
// it reports the line that called Locate; 1 is that function's caller, and
// so on.  Inlined frames count as real frames.
func Locate(skip int) (CallSite, error) {
	_, file, line, ok := runtime.Caller(skip + 1)
	site := CallSite{File: file, Line: line}
	if !ok || !site.Valid() {
		return CallSite{}, fmt.Errorf("%w: skip %d", ErrLocationUnresolved, skip)
	}
	return site, nil
}

// Here captures the line it is called from.  Use it to pin a template to a
// package-level variable once, at load time:
//
//	var footer = inline.Here()
//	// <footer>{{ .year }}</footer>
//
// It returns the zero CallSite when the caller cannot be resolved.
func Here() CallSite {
	site, err := Locate(1)
	if err != nil {
		return CallSite{}
	}
	return site
}
