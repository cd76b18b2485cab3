package main

import "github.com/joncrangle/helix-runner/cmd"

func main() {
	cmd.Execute()
}
