package main

import "ge-sync/cmd"

func main() {
	cmd.Execute()
}
