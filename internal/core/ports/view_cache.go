package ports

import "context"

// View paths used as cache keys by readers and invalidated by writers.
const (
	PathDashboard = "/dashboard"
	PathInvoices  = "/dashboard/invoices"
	PathCustomers = "/dashboard/customers"
)

// ViewCache stores rendered read results per view path. A path may hold
// several variants (e.g. one per query/page pair).
type ViewCache interface {
	// Load decodes the cached variant into dest and reports whether it existed.
	Load(ctx context.Context, path, variant string, dest any) (bool, error)
	Store(ctx context.Context, path, variant string, value any) error
	// Revalidate discards every cached variant of path.
	Revalidate(ctx context.Context, path string) error
}
