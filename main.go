package main

import "github.com/mwhite/hw/cmd"

func main() {
	cmd.Execute()
}
