// Package inline renders templates written as comments directly below the
// statement that renders them.
//
// Context
// -------
// A presenter embeds View and calls one of its format methods.  The lines
// that follow the call, as long as each starts with "//" or "#", are the
// template:
//
//	type User struct {
//		inline.View
//		Name string
//	}
//
//	func (u *User) Badge() (string, error) {
//		return u.ERB(inline.Locals{"role": "admin"})
//		// <span><%= .self.Name %> (<%= .role %>)</span>
//	}
//
// On first use the comment block is extracted, written to the worker's
// scratch directory, and compiled by the engine registered for the format.
// Later renders reuse the compiled handle until the source file's mtime
// changes.  Any edit to the file invalidates every template cached from it.
//
// Workers
// -------
// Compiled handles live in a Cache owned by one worker at a time.  A Pool
// hands caches out per request (or per goroutine) and tears their scratch
// directories down on release past the idle limit, after idling longer
// than the eviction TTL, or at shutdown.  Two goroutines never share a
// cache, so each worker compiles its own copy of a template.
//
// Notes
// -----
//   - The render call must sit on a single line; the template starts on
//     the line after it.
//   - Binaries built with -trimpath cannot read their own sources and
//     fail with ErrSourceUnavailable.
//   - Edits that keep the same mtime go unnoticed.
package inline
