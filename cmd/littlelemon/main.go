package main

import "github.com/littlelemon/tablebook/cmd"

func main() {
	cmd.Execute()
}
