package main

import "github.com/nfrund/signin/cmd/signin-cli/cmd"

func main() {
	cmd.Execute()
}
