// pkg/tf2/time.go
// Time and Duration are the wire-shaped timestamp/retention types used
// throughout the transform buffer: a signed number of seconds plus a
// non-negative fraction of a second, exactly matching the (sec int32,
// nanosec uint32) pair producers stamp transforms with. The package keeps
// its own arithmetic rather than reusing time.Time/time.Duration because the
// int32-seconds wire shape and the sign/overflow rules below are part of the
// data contract, not an implementation detail.
package tf2

import "fmt"

const nsPerSecond = int64(1e9)

// Time is a point in time expressed as (seconds, nanoseconds) since an
// unspecified epoch. Nanosec is always normalized to [0, 1e9).
//
// A Time with Nanosec == 0 and Sec == 0 is the "latest" sentinel understood
// by EdgeHistory.SampleAt and TfBuffer lookups; it is not a real instant.
type Time struct {
    Sec     int32
    Nanosec uint32
}

// Duration has the same shape as Time but denotes an elapsed (possibly
// negative) span rather than an instant.
type Duration struct {
    Sec     int32
    Nanosec uint32
}

// IsLatest reports whether t is the zero-valued "use newest data" sentinel.
func (t Time) IsLatest() bool { return t.Sec == 0 && t.Nanosec == 0 }

// ToNanos converts t to a signed nanosecond count. It cannot overflow: Sec is
// an int32, so |Sec| <= 2^31 and |Sec|*1e9 stays far below the int64 limit.
func (t Time) ToNanos() int64 {
    return int64(t.Sec)*nsPerSecond + int64(t.Nanosec)
}

// DurationFromNanos re-normalizes a signed nanosecond count into a Duration.
func DurationFromNanos(n int64) Duration {
    sec := n / nsPerSecond
    nsec := n % nsPerSecond
    if nsec < 0 {
        nsec += nsPerSecond
        sec--
    }
    return Duration{Sec: int32(sec), Nanosec: uint32(nsec)}
}

// TimeFromNanos re-normalizes a signed nanosecond count into a Time.
func TimeFromNanos(n int64) Time {
    d := DurationFromNanos(n)
    return Time{Sec: d.Sec, Nanosec: d.Nanosec}
}

// ToNanos converts d to a signed nanosecond count.
func (d Duration) ToNanos() int64 {
    return int64(d.Sec)*nsPerSecond + int64(d.Nanosec)
}

// Compare returns -1, 0 or 1 as t is before, equal to, or after other.
func (t Time) Compare(other Time) int {
    a, b := t.ToNanos(), other.ToNanos()
    switch {
    case a < b:
        return -1
    case a > b:
        return 1
    default:
        return 0
    }
}

// Before reports whether t occurs strictly before other.
func (t Time) Before(other Time) bool { return t.Compare(other) < 0 }

// After reports whether t occurs strictly after other.
func (t Time) After(other Time) bool { return t.Compare(other) > 0 }

// Sub returns the signed duration t - other.
func (t Time) Sub(other Time) Duration {
    return DurationFromNanos(t.ToNanos() - other.ToNanos())
}

// Add returns t + d, normalized.
func (t Time) Add(d Duration) Time {
    return TimeFromNanos(t.ToNanos() + d.ToNanos())
}

// SubDuration returns t - d, normalized.
func (t Time) SubDuration(d Duration) Time {
    return TimeFromNanos(t.ToNanos() - d.ToNanos())
}

func (t Time) String() string {
    return fmt.Sprintf("%d.%09ds", t.Sec, t.Nanosec)
}

func (d Duration) String() string {
    return fmt.Sprintf("%d.%09ds", d.Sec, d.Nanosec)
}
