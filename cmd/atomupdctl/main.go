// Command atomupdctl operates the update-selection core: it scans an
// image pool into a Catalog, runs the Static Exporter against it,
// answers ad-hoc Selector queries, and can watch the pool for changes.
package main

func main() {
	Execute()
}
