// Package cmaclient provides the primary entry point for constructing a
// Contentful Content Management API client that implements the cma.Client
// interface.
//
// It layers configuration and HTTP transport on top of the resource
// interfaces and types defined in the cma package. Most applications should
// import cmaclient to build a client, then use the returned cma.Client to
// access resource-specific clients, for example Entries(), Assets(),
// ContentTypes(), etc.
//
// Quick start
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
//
//	  // Minimal: just a management token.
//	  cli, err := cmaclient.NewWithToken("CFPAT-...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or scoped to a space and environment so the content clients know
//	  // where to operate:
//	  cli, err = cmaclient.New(&cma.Config{
//	    AccessToken: "CFPAT-...",
//	    SpaceID:     "space-id",
//	    Environment: "master",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the cma.Client interface
//	  entries, err := cli.Entries().List(ctx, cma.NewQueryParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = entries
//	}
//
// # Rate limiting
//
// By default a rate-limited request fails immediately with a
// cma.RateLimitError. Set Config.MaxRateLimitRetries to let the client wait
// out the server-advertised window and retry; waits longer than
// Config.MaxRateLimitWait (60 seconds by default) fail with
// cma.RateWaitTooLongError without sleeping.
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken and
// NewScoped that wrap New with the appropriate configuration.
package cmaclient
