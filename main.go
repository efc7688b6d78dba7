package main

import "github.com/gaurav-prasanna/studyharvest/cmd"

func main() {
	cmd.Execute()
}
