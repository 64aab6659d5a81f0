package ua

import (
	"strings"
	"testing"

	surfer "github.com/avct/uasurfer"
)

const (
	chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/125.0.6422.60 Safari/537.36"
	googlebot = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestParse_Desktop(t *testing.T) {
	info := Parse(chromeMac)
	if info.Browser != "Chrome" {
		t.Errorf("Browser = %q", info.Browser)
	}
	if info.Device != "Desktop" {
		t.Errorf("Device = %q", info.Device)
	}
	if info.IsBot {
		t.Error("desktop Chrome flagged as bot")
	}
	if info.Raw != chromeMac {
		t.Error("Raw not preserved")
	}
	if !strings.HasPrefix(info.Summary(), "Chrome ") {
		t.Errorf("Summary = %q", info.Summary())
	}
}

func TestParse_Bot(t *testing.T) {
	info := Parse(googlebot)
	if !info.IsBot {
		t.Fatal("Googlebot not flagged")
	}
	if !strings.HasSuffix(info.Summary(), "[bot]") {
		t.Errorf("Summary = %q", info.Summary())
	}
}

func TestVersionToString(t *testing.T) {
	cases := map[surfer.Version]string{
		{}:                              "",
		{Major: 17}:                     "17",
		{Major: 17, Minor: 3}:           "17.3",
		{Major: 17, Minor: 3, Patch: 1}: "17.3.1",
		{Major: 17, Patch: 2}:           "17.0.2",
	}
	for in, want := range cases {
		if got := versionToString(in); got != want {
			t.Errorf("versionToString(%+v) = %q, want %q", in, got, want)
		}
	}
}

func TestTrimPrefix(t *testing.T) {
	if got := trimPrefix("BrowserChrome", "Browser"); got != "Chrome" {
		t.Errorf("got %q", got)
	}
	if got := trimPrefix("Browser", "Browser"); got != "Browser" {
		t.Errorf("bare prefix collapsed to %q", got)
	}
}
