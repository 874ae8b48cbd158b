// hashlitvet reports //hashlit: directives that would fail generation.
//
// Usage:
//
//	hashlitvet ./...
//	hashlitvet -config=hashlit.toml ./...
//	go vet -vettool=$(which hashlitvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/portal-co/sha3-literal/lint"
)

func main() {
	singlechecker.Main(lint.Analyzer)
}
