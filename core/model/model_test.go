package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"7:20 AM", 7*60 + 20},
		{"07:20 AM", 7*60 + 20},
		{"7:20AM", 7*60 + 20},
		{"07:20", 7*60 + 20},
		{"15:50", 15*60 + 50},
		{"12:05 PM", 12*60 + 5},
		{"12:05 am", 5},
		{"3:00 p.m.", 15 * 60},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("%q: expected %d got %d", c.in, c.want, got)
		}
	}
	for _, bad := range []string{"", "noon", "25:00", "13:00 PM", "7:61", "7"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(7*60 + 5); got != "07:05 AM" {
		t.Fatalf("unexpected %s", got)
	}
	if got := FormatClock(12 * 60); got != "12:00 PM" {
		t.Fatalf("unexpected %s", got)
	}
	if got := FormatClock(0); got != "12:00 AM" {
		t.Fatalf("unexpected %s", got)
	}
}

func TestParseDayAndSort(t *testing.T) {
	if d, ok := ParseDay(" tuesday "); !ok || d != Tuesday {
		t.Fatalf("expected Tuesday got %q", d)
	}
	if d, ok := ParseDay("Fri"); !ok || d != Friday {
		t.Fatalf("expected Friday got %q", d)
	}
	if _, ok := ParseDay("Fr"); ok {
		t.Fatal("two letters should not resolve")
	}
	got := SortDays([]DayOfWeek{Friday, "Holiday", Monday, Wednesday, Monday})
	want := []DayOfWeek{Monday, Wednesday, Friday, "Holiday"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestPeriodTypeLabel(t *testing.T) {
	if PeriodBreak.Label() != "Break" {
		t.Fatalf("unexpected label %s", PeriodBreak.Label())
	}
	if pt, ok := ParsePeriodType(" Assembly "); !ok || pt != PeriodAssembly {
		t.Fatalf("unexpected type %s", pt)
	}
	if pt, ok := ParsePeriodType("recess"); ok || pt != PeriodOther {
		t.Fatalf("unexpected type %s", pt)
	}
}

func TestPeriodEntryDecode(t *testing.T) {
	data := `[
	  {"period_no":1,"start":"08:00 AM","end":"08:40 AM","type":"class","subject":{"name":"Mathematics","teacher":"Mr. Ade"}},
	  {"period_no":2,"start":"08:40 AM","end":"09:00 AM","type":"break","subject":null},
	  {"period_no":3,"start":"09:00 AM","end":"09:40 AM","type":"class","subject":"Music"}
	]`
	var entries []PeriodEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entries[0].Teacher() != "Mr. Ade" || entries[0].Label() != "Mathematics" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Subject != nil || entries[1].Label() != "Break" {
		t.Fatalf("unexpected break entry %+v", entries[1])
	}
	if entries[2].Label() != "Music" || entries[2].Teacher() != "" {
		t.Fatalf("unexpected bare subject %+v", entries[2])
	}
	if entries[0].Slot() != "08:00 AM - 08:40 AM" {
		t.Fatalf("unexpected slot %q", entries[0].Slot())
	}
}

func TestClassScheduleNormalize(t *testing.T) {
	s := ClassSchedule{
		"monday":  {{PeriodNo: 1, Start: " 08:00 ", End: "08:40", Type: "CLASS"}},
		"Tuesday": nil,
	}
	n := s.Normalize()
	if len(n["Monday"]) != 1 || n["Monday"][0].Type != PeriodClass || n["Monday"][0].Start != "08:00" {
		t.Fatalf("unexpected normalised schedule %+v", n)
	}
	if _, ok := n["Tuesday"]; !ok {
		t.Fatal("empty day dropped")
	}
}

func TestTeacherBusyAbsorb(t *testing.T) {
	busy := TeacherBusy{"Mrs. Obi": {"Monday 07:00-07:40"}}
	sched := ClassSchedule{
		"Tuesday": {
			{Start: "08:00", End: "08:40", Type: PeriodClass, Subject: &SubjectSlot{Name: "English", TeacherName: "Mrs. Obi"}},
			{Start: "08:40", End: "09:00", Type: PeriodBreak},
		},
		"Monday": {
			{Start: "08:00", End: "08:40", Type: PeriodClass, Subject: &SubjectSlot{Name: "Maths", TeacherName: "Mr. Ade"}},
			{Start: "09:00", End: "09:40", Type: PeriodClass, Subject: &SubjectSlot{Name: "Free study"}},
			{Start: "09:40", End: "10:00", Type: PeriodActivity, Subject: &SubjectSlot{Name: "Club", TeacherName: "Mr. Ade"}},
		},
	}
	added := busy.Absorb(sched)
	if added != 2 {
		t.Fatalf("expected 2 added got %d", added)
	}
	want := TeacherBusy{
		"Mrs. Obi": {"Monday 07:00-07:40", "Tuesday 08:00-08:40"},
		"Mr. Ade":  {"Monday 08:00-08:40"},
	}
	if !reflect.DeepEqual(busy, want) {
		t.Fatalf("expected %v got %v", want, busy)
	}
	// a second absorb appends again without de-duplication
	busy.Absorb(sched)
	if len(busy["Mr. Ade"]) != 2 || busy.Slots() != 5 {
		t.Fatalf("expected accumulation got %v", busy)
	}
	snap := busy.Clone()
	snap["Mr. Ade"][0] = "changed"
	if busy["Mr. Ade"][0] == "changed" {
		t.Fatal("clone shares storage")
	}
}
