package main

import "github.com/dogeorg/wifiscand/cmd/wifiscand/cmd"

func main() {
	cmd.Execute()
}
