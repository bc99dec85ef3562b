package yuletide

// depthEntry is one particle's rotated coordinates, cached for the sort and
// the projection pass that follows it.
type depthEntry struct {
	rx, rz float64
	idx    int32
}

// depthSorter orders entries farthest-first (descending rz) so nearer
// particles paint over farther ones. Bottom-up merge sort: stable and zero
// allocations once the scratch buffer reaches its high-water mark.
type depthSorter struct {
	scratch []depthEntry
}

func (d *depthSorter) sort(entries []depthEntry) {
	n := len(entries)
	if n <= 1 {
		return
	}
	if cap(d.scratch) < n {
		d.scratch = make([]depthEntry, n)
	}
	d.scratch = d.scratch[:n]

	a, b := entries, d.scratch
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeDepth(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(entries, d.scratch)
	}
}

// mergeDepth merges the sorted runs [lo, mid) and [mid, hi) of src into dst.
func mergeDepth(src, dst []depthEntry, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if src[i].rz >= src[j].rz {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
