// Command devopsite serves the consultancy site and ships the tooling around
// it: content validation, sitemap export and project scaffolding.
package main

func main() {
	Execute()
}
