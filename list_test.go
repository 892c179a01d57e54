package sigslot

import "testing"

func collectIDs(l *connList) []uint64 {
	var ids []uint64
	for cur := l.head.next; cur != &l.tail; cur = cur.next {
		ids = append(ids, cur.id)
	}
	return ids
}

func newTestList(t *testing.T) *connList {
	t.Helper()
	l := &connList{}
	l.init()
	return l
}

func TestConnList_InitEmpty(t *testing.T) {
	l := newTestList(t)
	if !l.empty() {
		t.Error("fresh list should be empty")
	}
	if l.len() != 0 {
		t.Errorf("fresh list len = %d, want 0", l.len())
	}
	if l.front() != nil || l.back() != nil {
		t.Error("front/back of empty list should be nil")
	}
}

func TestConnList_PushBackOrder(t *testing.T) {
	l := newTestList(t)
	for i := uint64(1); i <= 3; i++ {
		l.pushBack(&node{id: i})
	}
	ids := collectIDs(l)
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("unexpected order: %v", ids)
	}
	if l.front().id != 1 || l.back().id != 3 {
		t.Errorf("front=%d back=%d", l.front().id, l.back().id)
	}
}

func TestConnList_PushFrontOrder(t *testing.T) {
	l := newTestList(t)
	l.pushBack(&node{id: 1})
	l.pushFront(&node{id: 2})
	ids := collectIDs(l)
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Errorf("unexpected order: %v", ids)
	}
}

func TestConnList_EraseTombstone(t *testing.T) {
	l := newTestList(t)
	a, b, c := &node{id: 1}, &node{id: 2}, &node{id: 3}
	l.pushBack(a)
	l.pushBack(b)
	l.pushBack(c)

	l.erase(b)

	if b.prev != nil {
		t.Error("erased node should have nil prev (tombstone)")
	}
	if b.next != c {
		t.Error("erased node should keep its forward link")
	}
	ids := collectIDs(l)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("unexpected order after erase: %v", ids)
	}

	// A traversal parked on the tombstone advances to live successors.
	if b.next.id != 3 || b.next.next != &l.tail {
		t.Error("advancing from tombstone should reach tail")
	}

	// Erase is idempotent.
	l.erase(b)
	if l.len() != 2 {
		t.Errorf("len = %d, want 2", l.len())
	}
}

func TestConnList_EraseHeadAndTailElements(t *testing.T) {
	l := newTestList(t)
	a, b := &node{id: 1}, &node{id: 2}
	l.pushBack(a)
	l.pushBack(b)

	l.erase(a)
	if l.front() != b {
		t.Error("front should be b after erasing a")
	}
	l.erase(b)
	if !l.empty() {
		t.Error("list should be empty")
	}
}

func TestConnList_ClearConvergesTraversals(t *testing.T) {
	l := newTestList(t)
	a, b, c := &node{id: 1}, &node{id: 2}, &node{id: 3}
	l.pushBack(a)
	l.pushBack(b)
	l.pushBack(c)

	// Simulate a traversal suspended at b, then clear underneath it.
	l.clear()

	if !l.empty() {
		t.Error("list should be empty after clear")
	}
	for _, n := range []*node{a, b, c} {
		if n.prev != nil {
			t.Errorf("node %d should be tombstoned", n.id)
		}
		if n.next != &l.tail {
			t.Errorf("node %d next should park on tail", n.id)
		}
	}
}

func TestConnList_EraseRange(t *testing.T) {
	l := newTestList(t)
	nodes := make([]*node, 4)
	for i := range nodes {
		nodes[i] = &node{id: uint64(i + 1)}
		l.pushBack(nodes[i])
	}

	l.eraseRange(nodes[1], nodes[3])

	ids := collectIDs(l)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
		t.Errorf("unexpected order after eraseRange: %v", ids)
	}
}

func TestConnList_RemoveIf(t *testing.T) {
	l := newTestList(t)
	for i := uint64(1); i <= 5; i++ {
		l.pushBack(&node{id: i})
	}

	removed := l.removeIf(func(n *node) bool { return n.id%2 == 0 })

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	ids := collectIDs(l)
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 5 {
		t.Errorf("unexpected order after removeIf: %v", ids)
	}
}

func TestConnList_InsertDuringTraversal(t *testing.T) {
	l := newTestList(t)
	a := &node{id: 1}
	l.pushBack(a)

	// Traversal at a; append b. Re-reading a.next must see it.
	b := &node{id: 2}
	l.pushBack(b)
	if a.next != b {
		t.Error("appended node should be reachable from the cursor")
	}

	// Prepend c. The cursor at a must NOT see it.
	c := &node{id: 3}
	l.pushFront(c)
	if a.next != b {
		t.Error("prepended node must not appear ahead of the cursor")
	}
	if l.front() != c {
		t.Error("prepended node should be the new front")
	}
}
