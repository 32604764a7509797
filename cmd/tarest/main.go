package main

import "github.com/example/tarest/cmd"

func main() {
	cmd.Execute()
}
