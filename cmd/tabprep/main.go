package main

import "github.com/packagewjx/tabprep/cmd"

func main() {
	cmd.Execute()
}
