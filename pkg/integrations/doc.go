// Package integrations provides the shared HTTP client used by remote
// metadata lookups.
//
// # Client Pattern
//
// Each remote service has its own subpackage built on [Client]:
//
//	client := pubmed.NewClient(backend, 30*24*time.Hour)
//	cit, err := client.FetchCitation(ctx, "25161197", false) // false = use cache
//
// [Client] handles:
//   - HTTP requests with retry on transient failures and 429 responses
//   - JSON response caching through any [cache.Cache] backend
//   - HTTP hooks from the observability package
//
// Lookups only return values. They never modify an [ihm.System]; callers
// decide where a fetched citation goes.
//
// [cache.Cache]: github.com/matzehuels/ihmgraph/pkg/cache.Cache
// [ihm.System]: github.com/matzehuels/ihmgraph/pkg/ihm.System
package integrations
