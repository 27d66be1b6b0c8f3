package tf2

import "testing"

func TestTimeFromNanos(t *testing.T) {
	got := TimeFromNanos(1_234_567_890)
	want := Time{Sec: 1, Nanosec: 234_567_890}
	if got != want {
		t.Fatalf("TimeFromNanos() = %+v, want %+v", got, want)
	}
}

func TestTimeFromNanosNegative(t *testing.T) {
	got := TimeFromNanos(-1_500_000_000)
	want := Time{Sec: -2, Nanosec: 500_000_000}
	if got != want {
		t.Fatalf("TimeFromNanos(negative) = %+v, want %+v", got, want)
	}
}

func TestTimeSub(t *testing.T) {
	t1 := Time{Sec: 10, Nanosec: 234_567_890}
	t2 := Time{Sec: 10, Nanosec: 345_678_901}
	got := t2.Sub(t1)
	want := Duration{Sec: 0, Nanosec: 111_111_011}
	if got != want {
		t.Fatalf("Sub() = %+v, want %+v", got, want)
	}
}

func TestTimeSubBorrow(t *testing.T) {
	t1 := Time{Sec: 9, Nanosec: 456_789_012}
	t2 := Time{Sec: 10, Nanosec: 345_678_901}
	got := t2.Sub(t1)
	want := Duration{Sec: 0, Nanosec: 888_889_889}
	if got != want {
		t.Fatalf("Sub() with borrow = %+v, want %+v", got, want)
	}
}

func TestTimeAddDuration(t *testing.T) {
	t1 := Time{Sec: 10, Nanosec: 234_567_890}
	d := Duration{Sec: 1, Nanosec: 100_000_000}
	got := t1.Add(d)
	want := Time{Sec: 11, Nanosec: 334_567_890}
	if got != want {
		t.Fatalf("Add() = %+v, want %+v", got, want)
	}
}

func TestTimeAddDurationCarry(t *testing.T) {
	t1 := Time{Sec: 10, Nanosec: 234_567_890}
	d := Duration{Sec: 1, Nanosec: 999_999_999}
	got := t1.Add(d)
	want := Time{Sec: 12, Nanosec: 234_567_889}
	if got != want {
		t.Fatalf("Add() with carry = %+v, want %+v", got, want)
	}
}

func TestTimeSubDuration(t *testing.T) {
	t1 := Time{Sec: 10, Nanosec: 234_567_890}
	d := Duration{Sec: 1, Nanosec: 100_000_000}
	got := t1.SubDuration(d)
	want := Time{Sec: 9, Nanosec: 134_567_890}
	if got != want {
		t.Fatalf("SubDuration() = %+v, want %+v", got, want)
	}
}

func TestTimeSubDurationBorrow(t *testing.T) {
	t1 := Time{Sec: 10, Nanosec: 234_567_890}
	d := Duration{Sec: 1, Nanosec: 999_999_999}
	got := t1.SubDuration(d)
	want := Time{Sec: 8, Nanosec: 234_567_891}
	if got != want {
		t.Fatalf("SubDuration() with borrow = %+v, want %+v", got, want)
	}
}

func TestTimeCompare(t *testing.T) {
	early := Time{Sec: 1, Nanosec: 0}
	late := Time{Sec: 2, Nanosec: 0}
	if !early.Before(late) {
		t.Fatal("expected early.Before(late)")
	}
	if !late.After(early) {
		t.Fatal("expected late.After(early)")
	}
	if early.Compare(early) != 0 {
		t.Fatal("expected equal times to compare 0")
	}
}

func TestIsLatestSentinel(t *testing.T) {
	if !(Time{}).IsLatest() {
		t.Fatal("zero Time must be the latest sentinel")
	}
	if (Time{Sec: 0, Nanosec: 1}).IsLatest() {
		t.Fatal("non-zero nanosec must not be the latest sentinel")
	}
}
