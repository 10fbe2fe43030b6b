package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a dotted package version such as "1.2.0" or "2.0.beta".
// Segments are compared numerically when both sides are numeric, so
// "1.10" sorts above "1.9".
type Version struct {
	raw      string
	segments []versionSegment
}

type versionSegment struct {
	num   int
	str   string
	isNum bool
}

var versionSegmentPattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// ParseVersion parses a dotted version string. Segments are alphanumeric,
// so "1.2.0" and "2.0.beta" parse while "1..2" and "1.-2" do not.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}

	parts := strings.Split(trimmed, ".")
	segments := make([]versionSegment, 0, len(parts))
	for _, part := range parts {
		if !versionSegmentPattern.MatchString(part) {
			return Version{}, zerr.With(ErrInvalidVersion, "version", s)
		}
		if num, err := strconv.Atoi(part); err == nil {
			segments = append(segments, versionSegment{num: num, isNum: true})
			continue
		}
		segments = append(segments, versionSegment{str: part})
	}

	return Version{raw: trimmed, segments: segments}, nil
}

// String returns the version as it was parsed.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether the version is the uninitialized zero value.
func (v Version) IsZero() bool {
	return len(v.segments) == 0
}

// Compare returns -1, 0 or 1 depending on whether v sorts below, equal to
// or above o. Missing trailing segments count as zero, so "1.2" equals
// "1.2.0". A numeric segment sorts above a non-numeric one, so "1.0.0"
// sorts above a prerelease like "1.0.beta".
func (v Version) Compare(o Version) int {
	n := max(len(v.segments), len(o.segments))
	for i := range n {
		a := segmentAt(v.segments, i)
		b := segmentAt(o.segments, i)

		switch {
		case a.isNum && b.isNum:
			if a.num != b.num {
				if a.num < b.num {
					return -1
				}
				return 1
			}
		case a.isNum != b.isNum:
			if a.isNum {
				return 1
			}
			return -1
		default:
			if c := strings.Compare(a.str, b.str); c != 0 {
				return c
			}
		}
	}
	return 0
}

func segmentAt(segments []versionSegment, i int) versionSegment {
	if i < len(segments) {
		return segments[i]
	}
	return versionSegment{num: 0, isNum: true}
}

// Constraint restricts the versions a requirement accepts. It is a
// comma-separated conjunction of clauses such as ">= 1.2, < 2.0".
// The empty constraint accepts every version.
type Constraint struct {
	raw     string
	clauses []constraintClause
}

type constraintClause struct {
	op      string
	version Version
}

var constraintClausePattern = regexp.MustCompile(`^(>=|<=|!=|~>|=|>|<)?\s*(.+)$`)

// ParseConstraint parses a version constraint expression.
func ParseConstraint(s string) (Constraint, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Constraint{}, nil
	}

	parts := strings.Split(trimmed, ",")
	clauses := make([]constraintClause, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		m := constraintClausePattern.FindStringSubmatch(part)
		if m == nil {
			return Constraint{}, zerr.With(ErrInvalidConstraint, "constraint", s)
		}

		op := m[1]
		if op == "" {
			op = "="
		}
		version, err := ParseVersion(m[2])
		if err != nil {
			return Constraint{}, zerr.With(ErrInvalidConstraint, "constraint", s)
		}
		if op == "~>" && !version.segments[0].isNum {
			return Constraint{}, zerr.With(ErrInvalidConstraint, "constraint", s)
		}
		clauses = append(clauses, constraintClause{op: op, version: version})
	}

	return Constraint{raw: trimmed, clauses: clauses}, nil
}

// String returns the constraint as it was parsed.
func (c Constraint) String() string {
	return c.raw
}

// IsAny reports whether the constraint accepts every version.
func (c Constraint) IsAny() bool {
	return len(c.clauses) == 0
}

// Matches reports whether the given version satisfies every clause.
func (c Constraint) Matches(v Version) bool {
	for _, clause := range c.clauses {
		if !clause.matches(v) {
			return false
		}
	}
	return true
}

func (cl constraintClause) matches(v Version) bool {
	cmp := v.Compare(cl.version)
	switch cl.op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case "~>":
		return cmp >= 0 && v.Compare(pessimisticUpper(cl.version)) < 0
	default:
		return false
	}
}

// pessimisticUpper returns the exclusive upper bound implied by a "~>"
// clause: the last segment is dropped and the one before it incremented,
// so "~> 1.2.3" allows up to (but not including) "1.3" and "~> 1.2"
// allows up to "2".
func pessimisticUpper(v Version) Version {
	segments := v.segments
	if len(segments) > 1 {
		segments = segments[:len(segments)-1]
	}
	upper := make([]versionSegment, len(segments))
	copy(upper, segments)
	upper[len(upper)-1].num++
	upper[len(upper)-1].isNum = true

	parts := make([]string, len(upper))
	for i, seg := range upper {
		if seg.isNum {
			parts[i] = strconv.Itoa(seg.num)
		} else {
			parts[i] = seg.str
		}
	}
	return Version{raw: strings.Join(parts, "."), segments: upper}
}
