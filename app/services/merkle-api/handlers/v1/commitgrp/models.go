package commitgrp

import (
	"time"

	"github.com/ardanlabs/merkleviz/business/core/commit"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
)

// NewCommitment is what we require from clients when committing.
type NewCommitment struct {
	Labels []string `json:"labels" validate:"required,min=1,max=65536"`
}

// RevealRequest is what we require from clients when revealing a label.
type RevealRequest struct {
	Index *int   `json:"index" validate:"required,gte=0"`
	Label string `json:"label"`
}

// AppCommitment is the api representation of a commitment. The labels are
// never returned.
type AppCommitment struct {
	ID          string        `json:"id"`
	Root        merkle.Digest `json:"root"`
	Depth       int           `json:"depth"`
	Leaves      int           `json:"leaves"`
	DateCreated string        `json:"date_created"`
}

func toAppCommitment(cmt commit.Commitment) AppCommitment {
	return AppCommitment{
		ID:          cmt.ID,
		Root:        cmt.Root,
		Depth:       cmt.Depth,
		Leaves:      len(cmt.Labels),
		DateCreated: cmt.DateCreated.Format(time.RFC3339),
	}
}
