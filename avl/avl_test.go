// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avltree/avl"
	"github.com/bitmark-inc/avltree/fault"
)

type stringItem struct {
	s    string
	data string // not part of the ordering
}

func (s stringItem) String() string {
	return s.s
}

func (s stringItem) Compare(x stringItem) int {
	return strings.Compare(s.s, x.s)
}

func newItemTree() *avl.Tree[stringItem] {
	return avl.NewWithCompare(func(a stringItem, b stringItem) int {
		return a.Compare(b)
	})
}

// fixed pseudo-random list of four digit keys, includes duplicates
func makeList(n int, seed uint32) []string {
	l := make([]string, n)
	x := seed
	for i := range l {
		x = x*1103515245 + 12345
		l[i] = fmt.Sprintf("%04d", (x>>8)%10000)
	}
	return l
}

func TestListShort(t *testing.T) {
	addList := []string{"4201", "1254", "8608", "1639", "8950", "6740"}
	doList(t, addList)
}

// to make sure that lots of duplicates do not increment the node
// count incorrectly
func TestListDuplicates(t *testing.T) {
	addList := makeList(40, 17)
	for i := 0; i < 35; i += 1 {
		addList = append(addList, addList[i%7])
	}
	doList(t, addList)
}

func TestListLong(t *testing.T) {
	doList(t, makeList(240, 2021))
}

func TestListAscending(t *testing.T) {
	addList := make([]string, 200)
	for i := range addList {
		addList[i] = fmt.Sprintf("%04d", i)
	}
	doList(t, addList)
}

// add the whole list then delete a growing prefix of it followed by
// the remainder, checking the tree after each stage
func doList(t *testing.T, addList []string) {

	unique := make(map[string]struct{})
	for _, key := range addList {
		unique[key] = struct{}{}
	}

	for i := 0; i < len(addList)+1; i += 1 {

		alreadyDeleted := make(map[string]struct{})

		tree := avl.New[string]()
		for _, key := range addList {
			tree.Insert(key)
		}

		checkTree(t, tree, "add")
		require.Equal(t, len(unique), tree.Count(), "count after add")

		deleteKeys := func(keys []string) {
			for _, key := range keys {
				if _, ok := alreadyDeleted[key]; ok {
					continue
				}
				alreadyDeleted[key] = struct{}{}
				dv, err := tree.Remove(key)
				require.NoError(t, err, "remove: %q", key)
				require.Equal(t, key, dv, "remove returned")
			}
		}

		deleteKeys(addList[:i])
		checkTree(t, tree, "delete")
		require.Equal(t, len(unique)-len(alreadyDeleted), tree.Count(), "count after delete")

		deleteKeys(addList[i:])
		if !tree.IsEmpty() {
			var buffer bytes.Buffer
			depth := tree.Print(&buffer, true)
			t.Logf("depth: %d\n%s", depth, buffer.String())
			t.Fatal("remaining nodes")
		}
		assert.Equal(t, 0, tree.Count(), "count when empty")
		checkTree(t, tree, "remainder")
	}
}

func checkTree[T any](t *testing.T, tree *avl.Tree[T], stage string) {
	t.Helper()
	if err := tree.Check(); nil != err {
		var buffer bytes.Buffer
		depth := tree.Print(&buffer, true)
		t.Logf("depth: %d\n%s", depth, buffer.String())
		t.Fatalf("%s: %s", stage, err)
	}
}

func makeKey() string {

	b := make([]byte, 4)
	_, err := rand.Read(b)
	if nil != err {
		panic("rand failed")
	}
	n := int(binary.BigEndian.Uint32(b))
	return fmt.Sprintf("%04d", n%10000)
}

func TestRandomTree(t *testing.T) {

	randomTree(t, 2200, 2000)
	randomTree(t, 3400, 2760)
	randomTree(t, 5467, 1234)

	for i := 0; i < 5; i += 1 {
		randomTree(t, 2100, 2000)
	}
}

func randomTree(t *testing.T, total int, toDelete int) {

	if toDelete > total {
		t.Fatalf("failed: total: %d  < deletions: %d", total, toDelete)
	}

	tree := avl.New[string]()
	present := make(map[string]struct{})
	d := make([]string, toDelete)

	for i := 0; i < total; i += 1 {
		key := makeKey()
		if i < len(d) {
			d[i] = key
		}
		tree.Insert(key)
		present[key] = struct{}{}
	}
	checkTree(t, tree, "add")
	require.Equal(t, len(present), tree.Count())

	for _, key := range d {
		_, err := tree.Remove(key)
		if _, ok := present[key]; ok {
			require.NoError(t, err, "remove: %q", key)
			delete(present, key)
		} else {
			require.True(t, fault.IsErrNotFound(err), "second remove of: %q", key)
		}
	}
	checkTree(t, tree, "delete")
	require.Equal(t, len(present), tree.Count())

	// every survivor is still found
	for key := range present {
		v, ok := tree.Lookup(key)
		require.True(t, ok, "lookup: %q", key)
		require.Equal(t, key, v)
	}

	// height bound for an AVL tree: h < 1.44 log2(n + 2)
	n := tree.Count()
	bound := 0
	for x := n + 2; x > 0; x >>= 1 {
		bound += 1
	}
	assert.LessOrEqual(t, tree.Height(), (bound*144+99)/100, "height: %d for count: %d", tree.Height(), n)
}

func TestEmptyTree(t *testing.T) {
	tree := avl.New[int]()

	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Count())
	assert.Equal(t, -1, tree.Height())

	_, ok := tree.Root()
	assert.False(t, ok, "root of empty tree")
	_, ok = tree.RootValue()
	assert.False(t, ok, "root value of empty tree")
	_, ok = tree.Find(1)
	assert.False(t, ok, "find in empty tree")

	_, err := tree.Remove(1)
	assert.Equal(t, fault.ErrElementNotFound, err)
	checkTree(t, tree, "empty")
}

func TestRoundTrip(t *testing.T) {
	tree := avl.New[int]()
	for _, v := range []int{50, 25, 75, 10, 30} {
		tree.Insert(v)
	}

	h, inserted := tree.Insert(42)
	require.True(t, inserted)

	f, found := tree.Find(42)
	require.True(t, found)
	assert.Equal(t, h, f, "find returned a different node")
	assert.Equal(t, 42, *tree.Value(f))

	v, err := tree.Remove(42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, found = tree.Find(42)
	assert.False(t, found, "found after remove")
	assert.False(t, tree.Contains(42))
	assert.Nil(t, tree.Value(h), "handle of removed value still valid")
	checkTree(t, tree, "round trip")
}

func TestDuplicateInsert(t *testing.T) {
	tree := newItemTree()

	first, inserted := tree.Insert(stringItem{s: "key", data: "original"})
	require.True(t, inserted)
	tree.Insert(stringItem{s: "other"})

	second, inserted := tree.Insert(stringItem{s: "key", data: "replacement"})
	assert.False(t, inserted, "duplicate inserted")
	assert.Equal(t, first, second, "duplicate returned a different node")
	assert.Equal(t, 2, tree.Count())

	// the existing element is exposed for update in place
	tree.Value(second).data = "updated"

	v, ok := tree.Lookup(stringItem{s: "key"})
	require.True(t, ok)
	assert.Equal(t, "updated", v.data)
	checkTree(t, tree, "duplicate")
}

func TestRemoveNotFound(t *testing.T) {
	tree := avl.New[int]()
	for _, v := range []int{20, 10, 30, 5, 15, 25, 35} {
		tree.Insert(v)
	}
	before := tree.Clone()
	rootBefore, _ := tree.RootValue()

	_, err := tree.Remove(99)
	require.Error(t, err)
	assert.True(t, fault.IsErrNotFound(err))
	assert.Equal(t, fault.ErrElementNotFound, err)

	assert.Equal(t, 7, tree.Count())
	rootAfter, _ := tree.RootValue()
	assert.Equal(t, rootBefore, rootAfter)

	var b1, b2 bytes.Buffer
	before.Print(&b1, true)
	tree.Print(&b2, true)
	assert.Equal(t, b1.String(), b2.String(), "structure changed")
}

func TestRemoveReturnsStoredValue(t *testing.T) {
	tree := newItemTree()
	tree.Insert(stringItem{s: "b", data: "stored b"})
	tree.Insert(stringItem{s: "a", data: "stored a"})
	tree.Insert(stringItem{s: "c", data: "stored c"})

	v, err := tree.Remove(stringItem{s: "b"})
	require.NoError(t, err)
	assert.Equal(t, "stored b", v.data)

	v, err = tree.Remove(stringItem{s: "a"})
	require.NoError(t, err)
	assert.Equal(t, "stored a", v.data)

	root, ok := tree.RootValue()
	require.True(t, ok)
	assert.Equal(t, "stored c", root.data)
}

func TestClear(t *testing.T) {
	tree := avl.New[int]()
	for i := 0; i < 100; i += 1 {
		tree.Insert(i * 7 % 101)
	}
	require.Equal(t, 100, tree.Count())

	released := tree.Clear()
	assert.Equal(t, 100, released)
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Count())
	total, free := tree.Stats()
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, free)
	checkTree(t, tree, "clear")

	// tree is usable again
	tree.Insert(3)
	tree.Insert(1)
	tree.Insert(2)
	root, _ := tree.RootValue()
	assert.Equal(t, 2, root)
	checkTree(t, tree, "reuse")

	assert.Equal(t, 0, avl.New[int]().Clear(), "clear of empty tree")
}

func TestClone(t *testing.T) {
	tree := avl.New[int]()
	for _, v := range []int{8, 4, 12, 2, 6, 10, 14} {
		tree.Insert(v)
	}
	h, _ := tree.Find(6)

	c := tree.Clone()
	checkTree(t, c, "clone")

	v, ok := c.Get(h)
	require.True(t, ok, "handle not carried to clone")
	assert.Equal(t, 6, v)

	// trees are independent
	_, err := c.Remove(8)
	require.NoError(t, err)
	c.Insert(100)
	assert.True(t, tree.Contains(8))
	assert.False(t, tree.Contains(100))
	assert.Equal(t, 7, tree.Count())
	assert.Equal(t, 7, c.Count())
	checkTree(t, tree, "original")
	checkTree(t, c, "modified clone")
}

func TestValueOrder(t *testing.T) {
	values := []int{15, 3, 99, -4, 27, 0, 8, 61, 42, -17}
	tree := avl.New[int]()
	for _, v := range values {
		tree.Insert(v)
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	// removing the root repeatedly must leave every other value findable
	for len(sorted) > 0 {
		root, ok := tree.RootValue()
		require.True(t, ok)
		_, err := tree.Remove(root)
		require.NoError(t, err)
		i := sort.SearchInts(sorted, root)
		sorted = append(sorted[:i], sorted[i+1:]...)
		for _, v := range sorted {
			require.True(t, tree.Contains(v), "lost: %d after removing root: %d", v, root)
		}
		checkTree(t, tree, "remove root")
	}
}

func TestPrint(t *testing.T) {
	tree := avl.New[int]()
	for _, v := range []int{2, 1, 3} {
		tree.Insert(v)
	}

	var buffer bytes.Buffer
	depth := tree.Print(&buffer, false)
	assert.Equal(t, 2, depth)

	expected := "" +
		"       /------+ 3 ^2\n" +
		"|------+ 2 ^<nil>\n" +
		"       \\------+ 1 ^2\n"
	assert.Equal(t, expected, buffer.String())

	buffer.Reset()
	tree.Print(&buffer, true)
	assert.Contains(t, buffer.String(), "2 ^<nil> h:1 +0")
}
