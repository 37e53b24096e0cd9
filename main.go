package main

import "github.com/mj1618/statusbar-window/cmd"

func main() {
	cmd.Execute()
}
