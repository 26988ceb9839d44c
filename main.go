package main

import "auto-monocle/cmd"

func main() {
	cmd.Execute()
}
