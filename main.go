package main

import "github.com/OndraMix/Wiki/cmd"

func main() {
	cmd.Execute()
}
