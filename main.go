package main

import "github.com/notargets/geomesh/cmd"

func main() {
	cmd.Execute()
}
