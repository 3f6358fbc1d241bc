package main

import "github.com/NickRemizov/face-review/cmd"

func main() {
	cmd.Execute()
}
