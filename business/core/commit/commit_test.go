package commit_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ardanlabs/merkleviz/business/core/commit"
	"github.com/ardanlabs/merkleviz/business/core/commit/stores/disk"
	"github.com/ardanlabs/merkleviz/business/core/commit/stores/memory"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Commit(t *testing.T) {
	type table struct {
		name   string
		storer func(t *testing.T) commit.Storer
	}

	tt := []table{
		{
			name:   "memory",
			storer: func(t *testing.T) commit.Storer { return memory.New() },
		},
		{
			name: "disk",
			storer: func(t *testing.T) commit.Storer {
				d, err := disk.New(t.TempDir())
				if err != nil {
					t.Fatalf("\t%s\tShould be able to open the disk store: %v", failed, err)
				}
				return d
			},
		},
	}

	t.Log("Given the need to commit to a set of labels and reveal them later.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s store.", testID, tst.name)
			{
				f := func(t *testing.T) {
					ctx := context.Background()

					var evts []string
					ev := func(kind string, format string, args ...any) {
						evts = append(evts, kind+": "+fmt.Sprintf(format, args...))
					}

					core := commit.NewCore(zap.NewNop().Sugar(), tst.storer(t), ev)

					labels := []string{"tx1", "tx2", "tx3", "tx4"}
					now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

					cmt, err := core.Commit(ctx, labels, now)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to commit: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to commit.", success, testID)

					if cmt.Root != merkle.MustBuild(labels...).Root() || cmt.Depth != 3 {
						t.Fatalf("\t%s\tTest %d:\tShould commit to the tree root: %s", failed, testID, cmt.Root)
					}
					t.Logf("\t%s\tTest %d:\tShould commit to the tree root.", success, testID)

					second, err := core.Commit(ctx, []string{"a"}, now.Add(time.Second))
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to commit a second time: %v", failed, testID, err)
					}

					got, err := core.QueryByID(ctx, cmt.ID)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to query by id: %v", failed, testID, err)
					}
					if got.Root != cmt.Root || len(got.Labels) != len(labels) || !got.DateCreated.Equal(now) {
						t.Fatalf("\t%s\tTest %d:\tShould get back the same commitment: %+v", failed, testID, got)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to query by id.", success, testID)

					cmts, err := core.Query(ctx)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to query: %v", failed, testID, err)
					}
					if len(cmts) != 2 || cmts[0].ID != cmt.ID || cmts[1].ID != second.ID {
						t.Fatalf("\t%s\tTest %d:\tShould get every commitment oldest first: %d", failed, testID, len(cmts))
					}
					t.Logf("\t%s\tTest %d:\tShould get every commitment oldest first.", success, testID)

					rvl, err := core.Reveal(ctx, cmt.ID, 2, "tx3")
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to reveal: %v", failed, testID, err)
					}
					if !rvl.Valid || !merkle.VerifyProof(cmt.Root, "tx3", rvl.Proof) {
						t.Fatalf("\t%s\tTest %d:\tShould accept the committed label.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould accept the committed label.", success, testID)

					rvl, err = core.Reveal(ctx, cmt.ID, 2, "tx3*")
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to reveal: %v", failed, testID, err)
					}
					if rvl.Valid {
						t.Fatalf("\t%s\tTest %d:\tShould reject a label that was not committed.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject a label that was not committed.", success, testID)

					if _, err := core.Reveal(ctx, cmt.ID, 4, "tx5"); !errors.Is(err, merkle.ErrIndexOutOfRange) {
						t.Fatalf("\t%s\tTest %d:\tShould reject an index outside the tree: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould reject an index outside the tree.", success, testID)

					if _, err := core.QueryByID(ctx, "not-a-uuid"); !errors.Is(err, commit.ErrInvalidID) {
						t.Fatalf("\t%s\tTest %d:\tShould reject a malformed id: %v", failed, testID, err)
					}
					if _, err := core.QueryByID(ctx, "1c9d0b14-3f2b-4a3c-9a0f-1d5c7e2b8a11"); !errors.Is(err, commit.ErrNotFound) {
						t.Fatalf("\t%s\tTest %d:\tShould get not found for an unknown id: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould reject unknown and malformed ids.", success, testID)

					if _, err := core.Commit(ctx, nil, now); !merkle.IsInvalidInput(err) {
						t.Fatalf("\t%s\tTest %d:\tShould not commit to an empty set: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould not commit to an empty set.", success, testID)

					if len(evts) != 4 {
						t.Fatalf("\t%s\tTest %d:\tShould raise an event per commit and reveal: %v", failed, testID, evts)
					}
					t.Logf("\t%s\tTest %d:\tShould raise an event per commit and reveal.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_DiskQueryOrder(t *testing.T) {
	ctx := context.Background()

	d, err := disk.New(t.TempDir())
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open the disk store: %v", failed, err)
	}

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{
		"f3a1c8e2-6d2b-4c4e-9b7a-2f1e0d9c8b7a",
		"0b9e2d14-7c3a-4f5e-8d6c-1a2b3c4d5e6f",
		"7d4c3b2a-1e0f-4a9b-8c7d-6e5f4a3b2c1d",
	}

	for _, id := range ids {
		cmt := commit.Commitment{ID: id, Root: "e17bf10e", Depth: 3, Labels: []string{"a"}, DateCreated: now}
		if err := d.Create(ctx, cmt); err != nil {
			t.Fatalf("\t%s\tShould be able to create commitment %s: %v", failed, id, err)
		}
	}

	later := commit.Commitment{ID: "00000000-0000-4000-8000-000000000000", Root: "e17bf10e", Depth: 3, Labels: []string{"a"}, DateCreated: now.Add(time.Second)}
	if err := d.Create(ctx, later); err != nil {
		t.Fatalf("\t%s\tShould be able to create the later commitment: %v", failed, err)
	}

	exp := []string{ids[1], ids[2], ids[0], later.ID}

	for i := 0; i < 3; i++ {
		cmts, err := d.Query(ctx)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to query the commitments: %v", failed, err)
		}

		if len(cmts) != len(exp) {
			t.Fatalf("\t%s\tShould get every commitment: %d", failed, len(cmts))
		}

		for j, cmt := range cmts {
			if cmt.ID != exp[j] {
				t.Fatalf("\t%s\tShould get commitment %s at position %d: %s", failed, exp[j], j, cmt.ID)
			}
		}
	}
	t.Logf("\t%s\tShould order by creation date and then by id.", success)
}
