package main

import "github.com/theirongolddev/swipeplan/cmd"

func main() {
	cmd.Execute()
}
