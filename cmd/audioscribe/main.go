package main

import (
	"audioscribe/cmd/audioscribe/cmd"
)

func main() {
	cmd.Execute()
}
