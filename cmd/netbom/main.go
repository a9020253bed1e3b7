package main

import "github.com/OpenTraceLab/netbom/cmd/netbom/cmd"

func main() {
	cmd.Execute()
}
