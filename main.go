package main

import "github.com/LumenBytes/vidlens-cli/cmd"

func main() {
	cmd.Execute()
}
