package inline_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanizio/presenter/internal/engine"
	"github.com/yanizio/presenter/internal/inline"
)

type inlineUser struct {
	inline.View
	Greetee string
}

func newInlineUser(c *inline.Cache) *inlineUser {
	u := &inlineUser{}
	u.View = inline.NewView(u, c)
	return u
}

func (u *inlineUser) SimpleTemplate() (string, error) {
	return u.ERB(nil)
	// Here's some math: <%= 2 + 2 %>
}

func (u *inlineUser) Ivars() (string, error) {
	u.Greetee = "world"
	return u.ERB(nil)
	// Hello <%= self.Greetee %>!
}

func (u *inlineUser) LocalsFromMap() (string, error) {
	return u.ERB(inline.Locals{"local": "H"})
	// Local <%= local %>
}

func (u *inlineUser) LocalsFromBinding() (string, error) {
	type binding struct {
		Local string `inline:"local"`
	}
	local := "H"
	return u.ERB(inline.Bind(binding{local}))
	// Local <%= local %>
}

func (u *inlineUser) MethodCalls() (string, error) {
	return u.ERB(nil)
	// <%= self.LocalsFromMap %>
	// <%= self.LocalsFromBinding %>
}

func (u *inlineUser) Card() (string, error) {
	return u.HTML(inline.Locals{"title": "<Ada>"})
	// <div class="card">{{ .title }}</div>
}

func (u *inlineUser) Shout() (string, error) {
	u.Greetee = "pongo"
	return u.Django(nil)
	// {{ self.Greetee|upper }}
}

func (u *inlineUser) Notes() (string, error) {
	return u.Markdown(inline.Locals{"n": 2})
	// **{{ .n }}** notes
}

func (u *inlineUser) Plain() (string, error) {
	return u.Tmpl(nil)
	// {{ sub 10 3 }}
}

func (u *inlineUser) Haml() (string, error) {
	return u.Render("haml", nil)
	// %p nope
}

func (u *inlineUser) Empty() (string, error) {
	return u.ERB(nil)
}

var footerSite = inline.Here()
// Footer <%= year %>

func (u *inlineUser) Footer() (string, error) {
	return u.At(footerSite, engine.FormatERB, inline.Locals{"year": 2026})
}

func newCache(t testing.TB, opts ...inline.Option) *inline.Cache {
	t.Helper()
	opts = append([]inline.Option{inline.WithScratchRoot(t.TempDir())}, opts...)
	c := inline.NewCache(engine.Default(), opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func mustRender(t *testing.T, fn func() (string, error)) string {
	t.Helper()
	out, err := fn()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return strings.TrimSpace(out)
}

func TestView_Scenarios(t *testing.T) {
	u := newInlineUser(newCache(t))

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"renders a template", u.SimpleTemplate, "Here's some math: 4"},
		{"sees presenter state", u.Ivars, "Hello world!"},
		{"sees locals from a map", u.LocalsFromMap, "Local H"},
		{"sees locals from a binding", u.LocalsFromBinding, "Local H"},
		{"html escapes locals", u.Card, `<div class="card">&lt;Ada&gt;</div>`},
		{"django", u.Shout, "PONGO"},
		{"markdown", u.Notes, "<p><strong>2</strong> notes</p>"},
		{"text", u.Plain, "7"},
		{"static call site", u.Footer, "Footer 2026"},
		{"empty template", u.Empty, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRender(t, tt.fn); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestView_CallsOtherTemplatedMethods(t *testing.T) {
	u := newInlineUser(newCache(t))
	got := strings.Join(strings.Fields(mustRender(t, u.MethodCalls)), " ")
	if got != "Local H Local H" {
		t.Fatalf("got %q", got)
	}
}

func TestView_UnsupportedFormat(t *testing.T) {
	u := newInlineUser(newCache(t))
	if _, err := u.Haml(); !errors.Is(err, engine.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestView_NoWorker(t *testing.T) {
	u := newInlineUser(nil)
	if _, err := u.SimpleTemplate(); !errors.Is(err, inline.ErrNoWorker) {
		t.Fatalf("err = %v, want ErrNoWorker", err)
	}
}

func TestView_CachesPerCallSite(t *testing.T) {
	var extracts int
	c := newCache(t, inline.WithExtractor(func(file string, line int) (string, error) {
		extracts++
		return inline.Extract(file, line)
	}))
	u := newInlineUser(c)

	for i := 0; i < 3; i++ {
		mustRender(t, u.SimpleTemplate)
		mustRender(t, u.LocalsFromMap)
	}
	if extracts != 2 || c.Len() != 2 {
		t.Fatalf("extracts = %d, entries = %d; want 2, 2", extracts, c.Len())
	}

	c.Reset()
	mustRender(t, u.SimpleTemplate)
	if extracts != 3 {
		t.Fatalf("extracts = %d after reset, want 3", extracts)
	}
}

func TestRender_SeesUpdatesAfterReload(t *testing.T) {
	src := filepath.Join(t.TempDir(), "page.go")
	write := func(body string, mtime time.Time) {
		if err := os.WriteFile(src, []byte(body), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := os.Chtimes(src, mtime, mtime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	base := time.Unix(1_700_000_000, 0)
	write("erb()\n# Here's some math: <%= 2 + 2 %>\n", base)

	c := newCache(t)
	site := inline.CallSite{File: src, Line: 1}
	render := func() string {
		out, err := inline.Render(c, nil, nil, site, engine.FormatERB)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return out
	}

	if got := strings.TrimSpace(render()); got != "Here's some math: 4" {
		t.Fatalf("first render = %q", got)
	}

	// Same mtime: the cached handle wins even though content changed.
	write("erb()\n#HELLO\n", base)
	if got := strings.TrimSpace(render()); got != "Here's some math: 4" {
		t.Fatalf("render without mtime change = %q", got)
	}

	write("erb()\n#HELLO\n", base.Add(time.Second))
	if got := render(); got != "HELLO\n" {
		t.Fatalf("render after touch = %q, want %q", got, "HELLO\n")
	}
}

func TestRender_InvalidSite(t *testing.T) {
	_, err := inline.Render(newCache(t), nil, nil, inline.CallSite{}, engine.FormatERB)
	if !errors.Is(err, inline.ErrLocationUnresolved) {
		t.Fatalf("err = %v, want ErrLocationUnresolved", err)
	}
}

func TestRender_InvalidLocals(t *testing.T) {
	site := inline.CallSite{File: "unused.go", Line: 1}
	_, err := inline.Render(newCache(t), nil, 42, site, engine.FormatERB)
	if !errors.Is(err, inline.ErrInvalidLocals) {
		t.Fatalf("err = %v, want ErrInvalidLocals", err)
	}
}

func TestPool_ConcurrentWorkersRender(t *testing.T) {
	p := inline.NewPool(engine.Default(), inline.WithScratchRoot(t.TempDir()))
	t.Cleanup(func() { _ = p.Close() })

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			c, err := p.Acquire()
			if err != nil {
				return err
			}
			defer p.Release(c)

			out, err := newInlineUser(c).LocalsFromBinding()
			if err != nil {
				return err
			}
			if strings.TrimSpace(out) != "Local H" {
				return errors.New("unexpected output: " + out)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent render: %v", err)
	}
}

func BenchmarkView_Locals(b *testing.B) {
	u := newInlineUser(newCache(b))
	if _, err := u.LocalsFromMap(); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.LocalsFromMap(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkView_Bind(b *testing.B) {
	u := newInlineUser(newCache(b))
	if _, err := u.LocalsFromBinding(); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.LocalsFromBinding(); err != nil {
			b.Fatal(err)
		}
	}
}
