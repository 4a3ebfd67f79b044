package ports

import "frontier/internal/domain"

// CatalogPort is the read-only lookup over the static content catalogs.
type CatalogPort interface {
	// Action returns the action definition or ErrActionNotFound.
	Action(id string) (domain.ActionDef, error)

	// Job returns the job definition or ErrJobNotFound.
	Job(id string) (domain.JobDef, error)
}
