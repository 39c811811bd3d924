package main

import "github.com/jobscout-dev/jobscout/cmd"

func main() {
	cmd.Execute()
}
