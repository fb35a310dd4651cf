package civildate

import "testing"

func TestAddDaysRoundTrip(t *testing.T) {
	d, err := Parse("2025-02-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, n := range []int{0, 1, 5, 30, 365, -1, -30} {
		got := d.AddDays(n).AddDays(-n)
		if !got.Equal(d) {
			t.Errorf("addDays(%d) then addDays(%d) = %s, want %s", n, -n, got, d)
		}
	}
}

func TestDaysBetweenAddDays(t *testing.T) {
	d, err := Parse("2025-02-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for n := 0; n <= 40; n++ {
		got := DaysBetween(d, d.AddDays(n))
		if got != n {
			t.Errorf("daysBetween(addDays(d,%d), d) = %d, want %d", n, got, n)
		}
	}
}

func TestDaysBetweenSameDate(t *testing.T) {
	d, _ := Parse("2025-02-10")
	if got := DaysBetween(d, d); got != 0 {
		t.Errorf("daysBetween(a,a) = %d, want 0", got)
	}
}

func TestAddDaysComposition(t *testing.T) {
	d, _ := Parse("2025-01-01")
	n, m := 10, 25
	lhs := d.AddDays(n + m)
	rhs := d.AddDays(n).AddDays(m)
	if !lhs.Equal(rhs) {
		t.Errorf("addDays(d, n+m) = %s, addDays(addDays(d,n),m) = %s", lhs, rhs)
	}
}

func TestRangeInclusive(t *testing.T) {
	from, _ := Parse("2025-02-01")
	to, _ := Parse("2025-02-05")
	got := Range(from, to)
	if len(got) != 5 {
		t.Fatalf("expected 5 dates, got %d", len(got))
	}
	if !got[0].Equal(from) || !got[len(got)-1].Equal(to) {
		t.Errorf("range endpoints wrong: first=%s last=%s", got[0], got[len(got)-1])
	}
}

func TestRangeEmptyWhenReversed(t *testing.T) {
	from, _ := Parse("2025-02-05")
	to, _ := Parse("2025-02-01")
	if got := Range(from, to); got != nil {
		t.Errorf("expected nil range, got %v", got)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, _ := Parse("2025-02-10")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Date
	if err := got.UnmarshalJSON(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(d) {
		t.Errorf("round trip mismatch: got %s, want %s", got, d)
	}
}

func TestAcrossDaylightSavingBoundary(t *testing.T) {
	// Civil-date arithmetic must ignore local DST transitions entirely
	// since every Date is anchored to UTC midnight.
	d, _ := Parse("2025-03-08")
	got := d.AddDays(1)
	want, _ := Parse("2025-03-09")
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}
