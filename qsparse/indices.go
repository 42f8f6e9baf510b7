package qsparse

import (
	"strconv"
	"strings"
)

// normalizeIndices rewrites append markers in place into concrete indices,
// turning "a[]=x&a[]=y" into "a[0]=x&a[1]=y". Counters are kept per parent
// prefix; an explicit index under a prefix pushes later appends past it.
// The first segment of a path is never rewritten.
func normalizeIndices(paths [][]string, o *Options) {
	next := make(map[string]int)
	for _, path := range paths {
		for j := 1; j < len(path); j++ {
			prefix := strings.Join(path[:j], "")
			if path[j] == appendMarker {
				n, ok := next[prefix]
				if !ok {
					n = -1
				}
				n++
				next[prefix] = n
				path[j] = "[" + strconv.Itoa(n) + "]"
				continue
			}
			if n, ok := arrayIndex(path[j], o); ok {
				if cur, seen := next[prefix]; !seen || n > cur {
					next[prefix] = n
				}
			}
		}
	}
}
