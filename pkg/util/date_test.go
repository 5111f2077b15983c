package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseFeedTimeRFC1123Z(t *testing.T) {
	got, ok := ParseFeedTime("Mon, 01 Jan 2024 09:00:00 +0000")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseFeedTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseFeedTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseFeedTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseFeedTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseFeedTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseFeedTimeDefault("not a date", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestUnixToDate(t *testing.T) {
	if got := UnixToDate(1704153600); got != "2024-01-02" {
		t.Fatalf("unexpected date %s", got)
	}
}
