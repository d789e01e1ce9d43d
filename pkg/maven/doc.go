// Package maven resolves publication timestamps of Maven artifacts.
//
// # Overview
//
// Maven repositories expose each artifact's project descriptor (POM) at a
// well-known path. The descriptor's Last-Modified header stands in for the
// artifact's publication time, which is the raw input for dependency-age
// metrics. This package probes an ordered list of repository mirrors with
// header-only requests and returns the first mirror's reported timestamp.
//
// # Usage
//
//	client := maven.NewClient(nil, nil) // default transport and repositories
//
//	coord, err := maven.ParseCoordinate("org.springframework:spring-beans:7.0.1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ms, err := client.LastModified(ctx, coord)
//
// # Fallback Chain
//
// Repositories are probed strictly in the order given at construction and
// the first success wins. The default chain is ordered by empirical
// coverage: Maven Central, then Google Maven, the Gradle Plugin Portal, and
// JitPack. When every repository fails, the returned error carries the last
// probe's cause.
//
// # POM Parsing
//
// [ParsePOMFile] reads a local pom.xml and extracts the project's direct
// dependencies as coordinates, filtering out test/provided scope, optional
// dependencies, and entries that cannot be dated (unresolved properties or
// missing versions).
//
// The client never caches results and never retries a mirror; callers own
// any caching policy.
package maven
