package main

import "github.com/ethanolivertroy/dep-check/cmd"

func main() {
	cmd.Execute()
}
