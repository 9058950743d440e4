// Command topo scans a repository, builds its term/import/PageRank index,
// and ranks files by relevance to a task so an LLM agent can select a
// bounded context window without reading the whole tree.
package main

import "github.com/Demwunz/topo/internal/cli"

func main() {
	cli.Execute()
}
