package domain

import "slices"

// Manifest maps staged file paths, relative to the staging root and
// slash-separated, to their content digests.
type Manifest map[string]string

// Diff compares the recorded manifest against the digests of the current
// staging tree.
func (m Manifest) Diff(current Manifest) ManifestDiff {
	var d ManifestDiff
	for path, digest := range m {
		got, ok := current[path]
		switch {
		case !ok:
			d.Missing = append(d.Missing, path)
		case got != digest:
			d.Changed = append(d.Changed, path)
		}
	}
	for path := range current {
		if _, ok := m[path]; !ok {
			d.Extra = append(d.Extra, path)
		}
	}
	slices.Sort(d.Missing)
	slices.Sort(d.Changed)
	slices.Sort(d.Extra)
	return d
}

// ManifestDiff lists the paths that differ between a recorded manifest and
// the staging tree, each slice sorted for stable reporting.
type ManifestDiff struct {
	// Missing are recorded paths absent from the tree.
	Missing []string

	// Changed are recorded paths whose content digest differs.
	Changed []string

	// Extra are tree paths the manifest does not record.
	Extra []string
}

// Empty reports whether the tree matches the manifest exactly.
func (d ManifestDiff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Changed) == 0 && len(d.Extra) == 0
}
