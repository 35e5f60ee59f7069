package main

import (
	"soundlift/cmd"
)

func main() {
	cmd.Execute()
}
