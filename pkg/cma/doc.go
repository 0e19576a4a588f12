// Package cma provides types, interfaces, and helpers for working with the
// Contentful Content Management API.
//
// # Overview
//
// The cma package defines the domain types (e.g., Entry, Asset, ContentType,
// Locale) and the interfaces for resource-oriented clients (e.g.,
// EntriesClient, AssetsClient). A concrete implementation of these clients is
// provided by the cmaclient package, which wires configuration, transport,
// and the endpoint table. Most consumers should import cmaclient to construct
// a client and then interact with the resource client interfaces exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/contentful-labs/cma-client/pkg/cma"
//	  "github.com/contentful-labs/cma-client/pkg/cmaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := cmaclient.New(&cma.Config{
//	    AccessToken: "CFPAT-...",
//	    SpaceID:     "cfexampleapi",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of entries
//	  entries, err := cli.Entries().List(ctx, cma.NewQueryParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = entries
//	}
//
// # Queries and pagination
//
// Use QueryParams to express common list options (skip, limit, order,
// content_type, field filters). Collections are single pages; the package
// provides helpers for walking them:
//
//	it := cma.NewCollectionIterator(ctx, entriesClient, "/entries", cma.NewQueryParams())
//	for it.HasNext() {
//	  entry, err := it.Next()
//	  if err != nil { break }
//	  _ = entry
//	}
//
// # Links
//
// A Link is an unresolved reference carrying only a kind and id. Resolution
// is always explicit, through the Resolver obtained from the client:
//
//	author, err := cli.Resolver().Resolve(ctx, cma.NewLink("Entry", "author1"), nil)
//
// Resolving a collection of links skips individual failures and reports them
// together; see Resolver.ResolveCollection.
//
// # Rate limiting
//
// HTTP 429 responses are retried up to Config.MaxRateLimitRetries times (0
// by default), sleeping for the server-advertised number of seconds between
// attempts. A wait exceeding Config.MaxRateLimitWait fails immediately with
// RateWaitTooLongError. No other failure is retried unless Config.RetryMax
// opts in to transport-level retries.
//
// # Errors
//
// API errors are represented by ErrorResponse with the error id in its sys
// block. Helpers such as IsNotFound, IsUnauthorized, IsVersionMismatch, and
// IsRateLimit make it easy to branch on common cases.
package cma
