package main

import "github.com/resew-dev/resew/cmd"

func main() {
	cmd.Execute()
}
