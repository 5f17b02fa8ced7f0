// Package disk implements the commit.Storer interface writing each
// commitment to its own file on disk.
package disk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ardanlabs/merkleviz/business/core/commit"
)

// Disk represents the serialization implementation for reading and storing
// commitments in their own separate files on disk.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Create takes the specified commitment and stores it on disk in a file
// named after its id.
func (d *Disk) Create(ctx context.Context, cmt commit.Commitment) error {

	// Marshal the commitment for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(cmt, "", "  ")
	if err != nil {
		return err
	}

	// Create a new file for this commitment, it must not already exist.
	f, err := os.OpenFile(d.getPath(cmt.ID), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// QueryByID reads the commitment with the specified id from disk.
func (d *Disk) QueryByID(ctx context.Context, id string) (commit.Commitment, error) {
	f, err := os.Open(d.getPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return commit.Commitment{}, commit.ErrNotFound
		}
		return commit.Commitment{}, err
	}
	defer f.Close()

	var cmt commit.Commitment
	if err := json.NewDecoder(f).Decode(&cmt); err != nil {
		return commit.Commitment{}, fmt.Errorf("decode %s: %w", id, err)
	}

	return cmt, nil
}

// Query reads every commitment on disk ordered by creation date.
// Commitments created at the same instant are ordered by id.
func (d *Disk) Query(ctx context.Context) ([]commit.Commitment, error) {
	entries, err := os.ReadDir(d.dbPath)
	if err != nil {
		return nil, err
	}

	var cmts []commit.Commitment
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		cmt, err := d.QueryByID(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		cmts = append(cmts, cmt)
	}

	sort.SliceStable(cmts, func(i, j int) bool {
		if !cmts[i].DateCreated.Equal(cmts[j].DateCreated) {
			return cmts[i].DateCreated.Before(cmts[j].DateCreated)
		}
		return cmts[i].ID < cmts[j].ID
	})

	return cmts, nil
}

// getPath forms the path to the specified commitment.
func (d *Disk) getPath(id string) string {
	return filepath.Join(d.dbPath, fmt.Sprintf("%s.json", id))
}
