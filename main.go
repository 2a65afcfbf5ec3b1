package main

import "github.com/lepinkainen/bookinfo/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
