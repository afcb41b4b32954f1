package main

import "stickies/cmd/stickies-cli/cmd"

func main() {
	cmd.Execute()
}
