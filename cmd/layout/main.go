// Command layout edits the objects of a schematic or board design stored on
// disk.
package main

import "github.com/mesh-intelligence/layoutcore/internal/cli"

func main() {
	cli.Execute()
}
