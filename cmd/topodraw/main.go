package main

import "topodraw/cmd/topodraw/cmd"

func main() {
	cmd.Execute()
}
