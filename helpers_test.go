package pagedesk

import (
	"encoding/json"
	"testing"

	"github.com/eringen/pagedesk/page"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Beach Day":       "beach-day",
		"  Hello, World ": "hello-world",
		"---":             "",
		"IMG_2041":        "img-2041",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	if got := BuildURL("https://example.com"); got != "https://example.com" {
		t.Errorf("BuildURL(base) = %q", got)
	}
	if got := BuildURL("https://example.com/site", "page", "42"); got != "https://example.com/site/page/42/" {
		t.Errorf("BuildURL(segments) = %q", got)
	}
	if got := PagePath("a b"); got != "/page/a%20b/" {
		t.Errorf("PagePath = %q", got)
	}
}

func TestPageJsonLD(t *testing.T) {
	cfg := SiteConfig{URL: "https://example.com", Author: "Ada"}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(PageJsonLD(page.Page{ID: "3", Type: page.TypeVideo, Title: "Clip", Src: "/c.mp4", ContentType: "video/mp4"}, cfg)), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data["@type"] != "VideoObject" || data["encodingFormat"] != "video/mp4" {
		t.Errorf("unexpected video json-ld: %v", data)
	}
	if data["url"] != "https://example.com/page/3/" {
		t.Errorf("url = %v", data["url"])
	}
	if data["author"] == nil {
		t.Error("author should be set")
	}
}

func TestSummarize(t *testing.T) {
	if got := summarize("short  text\n", 50); got != "short text" {
		t.Errorf("summarize short = %q", got)
	}
	if got := summarize("one two three four", 10); got != "one two…" {
		t.Errorf("summarize long = %q", got)
	}
}
