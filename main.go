package main

import "fevertracker/cmd"

func main() {
	cmd.Execute()
}
