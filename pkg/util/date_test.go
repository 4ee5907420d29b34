package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeDay(t *testing.T) {
	got, ok := ParseTime("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestAlignFromTo(t *testing.T) {
	from := time.Date(2024, 10, 10, 14, 30, 0, 0, time.UTC)
	to := time.Date(2024, 10, 12, 9, 15, 0, 0, time.UTC)
	gotFrom, gotTo := AlignFromTo(from, to)
	if gotFrom != time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected from %v", gotFrom)
	}
	if gotTo != time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected to %v", gotTo)
	}
}

func TestFormatDay(t *testing.T) {
	got := FormatDay(time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC))
	if got != "2024-03-05" {
		t.Fatalf("unexpected day %q", got)
	}
}
