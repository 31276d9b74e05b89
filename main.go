package main

import "github.com/they4kman/safesweep/cmd"

func main() {
	cmd.Execute()
}
