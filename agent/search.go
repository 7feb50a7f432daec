package agent

import (
	"context"

	"github.com/https-dhanesh/Classifieds-App-Base/vendors"
)

// SearchClient is the orchestrator's view of the search backend. The
// vendors client satisfies it in production; tests substitute fakes.
type SearchClient interface {
	Search(ctx context.Context, query string) vendors.SearchResult
}
