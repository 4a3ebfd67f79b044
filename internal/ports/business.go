package ports

import "context"

// Business is a protected business owed its weekly protection cut.
type Business struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	WeeklyCut int64  `json:"weekly_cut"`
}

// BusinessPort lists the businesses covered by the weekly payment job.
type BusinessPort interface {
	ListProtected(ctx context.Context) ([]Business, error)
}
