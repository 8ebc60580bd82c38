// Package wiki provides access to article text and cross-edition identity
// links over the MediaWiki action API.
//
// # Client Interface
//
// The Client interface abstracts the two remote collaborators the checker
// depends on: the per-edition article source (existence, raw wikitext,
// redirect status) and the Wikidata entity link resolver (sitelinks). The
// interface makes both easy to mock for unit testing (see core/wiki/mocks).
//
// # Operations
//
//   - Exists: Verifies that a title resolves to a page on an edition.
//   - Fetch: Retrieves the raw wikitext of a page.
//   - RedirectTarget: Reports the redirect target of a title, if any.
//   - Sitelinks: Resolves the linked titles of a page on other editions.
//   - SitelinksBatch: Resolves sitelinks for up to fifty titles per call.
//
// # Usage
//
//	client, err := wiki.NewClient(cfg)
//	ok, err := client.Exists(ctx, "cs", "Voda")
package wiki
