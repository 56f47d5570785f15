package main

import "github.com/Gizlim/CoveragePlanner/cmd/coverageplanner/cmd"

func main() {
	cmd.Execute()
}
