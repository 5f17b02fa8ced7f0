package merkle_test

import (
	"fmt"
	"testing"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
)

func Test_FindChanges(t *testing.T) {
	t.Log("Given the need to find what changes when one transaction changes.")
	{
		before := merkle.MustBuild("tx1", "tx2", "tx3", "tx4")
		after := merkle.MustBuild("tx1", "tx2", "tx3*", "tx4")

		changes := merkle.FindChanges(before, after)

		exp := merkle.ChangeSet{{Level: 0, Index: 2}, {Level: 1, Index: 1}, {Level: 2, Index: 0}}
		if changes.Len() != len(exp) {
			t.Fatalf("\t%s\tShould have %d changes: %v", failed, len(exp), changes)
		}
		for i := range exp {
			if changes[i] != exp[i] {
				t.Fatalf("\t%s\tShould have change %s at %d: %s", failed, exp[i], i, changes[i])
			}
		}
		t.Logf("\t%s\tShould change the leaf, its parent and the root.", success)

		for _, pos := range []merkle.Position{{Level: 0, Index: 0}, {Level: 0, Index: 1}, {Level: 1, Index: 0}} {
			if changes.Contains(pos) {
				t.Fatalf("\t%s\tShould leave the tx1/tx2 subtree untouched: %s", failed, pos)
			}
		}
		t.Logf("\t%s\tShould leave the tx1/tx2 subtree untouched.", success)

		reverse := merkle.FindChanges(after, before)
		if fmt.Sprint(reverse) != fmt.Sprint(changes) {
			t.Fatalf("\t%s\tShould get the same changes in either direction.", failed)
		}
		t.Logf("\t%s\tShould get the same changes in either direction.", success)
	}
}

func Test_FindChangesPropagation(t *testing.T) {
	const n = 11

	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("leaf-%d", i)
	}
	before := merkle.MustBuild(labels...)

	for i := 0; i < n; i++ {
		f := func(t *testing.T) {
			changed := make([]string, n)
			copy(changed, labels)
			changed[i] += "'"

			changes := merkle.FindChanges(before, merkle.MustBuild(changed...))

			if got := changes.AtLevel(0); len(got) != 1 || got[0] != i {
				t.Fatalf("\t%s\tShould change only leaf %d: %v", failed, i, got)
			}
			t.Logf("\t%s\tShould change only leaf %d.", success, i)

			index := i
			for level := 1; level < before.Depth(); level++ {
				index /= 2
				got := changes.AtLevel(level)
				if len(got) != 1 || got[0] != index {
					t.Fatalf("\t%s\tShould change exactly position %d at level %d: %v", failed, index, level, got)
				}
			}
			t.Logf("\t%s\tShould change exactly one ancestor per level up to the root.", success)
		}

		t.Run(fmt.Sprintf("leaf-%d", i), f)
	}
}

func Test_FindChangesIdentical(t *testing.T) {
	a := merkle.MustBuild("a", "b", "c")
	b := merkle.MustBuild("a", "b", "c")

	if changes := merkle.FindChanges(a, b); changes.Len() != 0 {
		t.Fatalf("\t%s\tShould find no changes between identical trees: %v", failed, changes)
	}
	t.Logf("\t%s\tShould find no changes between identical trees.", success)
}

func Test_FindChangesBounds(t *testing.T) {
	large := merkle.MustBuild("a", "b", "c", "d", "e")

	if changes := merkle.FindChanges(merkle.MustBuild("a", "b"), large); changes.Len() != 0 {
		t.Fatalf("\t%s\tShould report nothing when all shared positions agree: %v", failed, changes)
	}
	t.Logf("\t%s\tShould report nothing when all shared positions agree.", success)

	small := merkle.MustBuild("a", "x")
	changes := merkle.FindChanges(small, large)

	exp := merkle.ChangeSet{{Level: 0, Index: 1}, {Level: 1, Index: 0}}
	if fmt.Sprint(changes) != fmt.Sprint(exp) {
		t.Fatalf("\t%s\tShould only report positions inside both trees: %v", failed, changes)
	}
	t.Logf("\t%s\tShould only report positions inside both trees.", success)

	if merkle.FindChanges(merkle.Tree{}, large).Len() != 0 {
		t.Fatalf("\t%s\tShould find nothing against an empty tree.", failed)
	}
	t.Logf("\t%s\tShould find nothing against an empty tree.", success)
}
