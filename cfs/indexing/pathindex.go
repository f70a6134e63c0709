package indexing

import (
	"github.com/armon/go-radix"
)

// pathIndex maps canonical paths to PathIDs through a compressed radix
// tree, giving O(k) lookups in the path length. Snapshots are immutable
// once built, so the index takes no lock.
type pathIndex struct {
	tree *radix.Tree
}

func newPathIndex() *pathIndex {
	return &pathIndex{tree: radix.New()}
}

func (idx *pathIndex) insert(path string, id PathID) {
	idx.tree.Insert(path, id)
}

func (idx *pathIndex) lookup(path string) (PathID, bool) {
	v, ok := idx.tree.Get(path)
	if !ok {
		return 0, false
	}
	return v.(PathID), true
}

// under collects the prefix path itself plus everything below it, in
// ascending PathID order. Descent past the prefix requires a separator,
// so "/a" never captures "/ab".
func (idx *pathIndex) under(prefix string) []PathID {
	var ids []PathID
	collect := func(key string, value interface{}) bool {
		ids = append(ids, value.(PathID))
		return false
	}
	if prefix == "/" {
		idx.tree.Walk(collect)
		return ids
	}
	if v, ok := idx.tree.Get(prefix); ok {
		ids = append(ids, v.(PathID))
	}
	idx.tree.WalkPrefix(prefix+"/", collect)
	return ids
}
